// Package service implements the booking use cases on top of the
// repositories. It is the single entry point for the presentation layer:
// handlers call the BookingService, never the repositories directly. The
// service forwards repository errors unchanged and adds the business rules
// that do not belong in the data layer — the [1,10] purchase quantity range
// and the administrator gate on catalog/schedule mutations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/cinema-ticketing/internal/queue"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
	"github.com/iliyamo/cinema-ticketing/internal/utils"
)

// MaxTicketQuantity caps a single purchase. The ticket repository itself
// only requires quantity >= 1; the cap is a business rule owned here.
const MaxTicketQuantity = 10

// ErrInvalidCredentials is returned by Authenticate for an unknown username
// or a wrong password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrNotAdmin is returned when a non-administrator account attempts a
// catalog or schedule mutation.
var ErrNotAdmin = errors.New("administrator role required")

// TicketEventPublisher delivers purchase events to interested consumers.
// Publishing is best-effort: the purchase has already committed when the
// publisher runs, and a delivery failure never fails the purchase.
type TicketEventPublisher interface {
	PublishTicketPurchased(ctx context.Context, event queue.TicketPurchasedEvent) error
}

// BookingService composes the repositories into the user-facing operations.
type BookingService struct {
	accounts  *repository.AccountRepo
	movies    *repository.MovieRepo
	schedules *repository.ScheduleRepo
	tickets   *repository.TicketRepo

	bcryptCost int
	events     TicketEventPublisher // optional; nil disables publishing
}

// New constructs a BookingService. events may be nil when no broker is
// configured.
func New(
	accounts *repository.AccountRepo,
	movies *repository.MovieRepo,
	schedules *repository.ScheduleRepo,
	tickets *repository.TicketRepo,
	bcryptCost int,
	events TicketEventPublisher,
) *BookingService {
	return &BookingService{
		accounts:   accounts,
		movies:     movies,
		schedules:  schedules,
		tickets:    tickets,
		bcryptCost: bcryptCost,
		events:     events,
	}
}

// MovieDetail bundles a movie with its showtimes for the detail view.
type MovieDetail struct {
	Movie     repository.Movie      `json:"movie"`
	Schedules []repository.Schedule `json:"schedules"`
}

// Register creates an account with the given role and returns it. Unknown
// role strings are rejected by the repository; callers that accept role
// input from the outside normalize it first.
func (s *BookingService) Register(ctx context.Context, username, password, role string) (repository.Account, error) {
	id, err := s.accounts.Create(ctx, username, password, role, s.bcryptCost)
	if err != nil {
		return repository.Account{}, err
	}
	return s.accounts.GetByID(ctx, id)
}

// Authenticate verifies a username/password pair and returns the matching
// account including its role. Both an unknown username and a wrong password
// yield ErrInvalidCredentials.
func (s *BookingService) Authenticate(ctx context.Context, username, password string) (repository.Account, error) {
	a, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return repository.Account{}, ErrInvalidCredentials
		}
		return repository.Account{}, err
	}
	if !utils.VerifyPassword(a.PasswordHash, password) {
		return repository.Account{}, ErrInvalidCredentials
	}
	return a, nil
}

// BrowseCatalog returns all movies.
func (s *BookingService) BrowseCatalog(ctx context.Context) ([]repository.Movie, error) {
	return s.movies.List(ctx)
}

// ViewMovieDetail returns a movie together with its schedules.
func (s *BookingService) ViewMovieDetail(ctx context.Context, movieID uint64) (*MovieDetail, error) {
	m, err := s.movies.GetByID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	scheds, err := s.schedules.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return &MovieDetail{Movie: *m, Schedules: scheds}, nil
}

// ListSchedules returns every schedule in the store.
func (s *BookingService) ListSchedules(ctx context.Context) ([]repository.Schedule, error) {
	return s.schedules.ListAll(ctx)
}

// PurchaseTicket buys quantity admissions to a schedule for an account. The
// quantity must lie in [1, MaxTicketQuantity]; the repository re-checks the
// lower bound. On success a ticket.purchased event is published best-effort.
func (s *BookingService) PurchaseTicket(ctx context.Context, accountID, scheduleID uint64, quantity uint32) (*repository.Ticket, error) {
	if quantity < 1 || quantity > MaxTicketQuantity {
		return nil, fmt.Errorf("%w: quantity must be between 1 and %d", repository.ErrInvalidQuantity, MaxTicketQuantity)
	}
	t := &repository.Ticket{AccountID: accountID, ScheduleID: scheduleID, Quantity: quantity}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	s.publishPurchase(ctx, t)
	return t, nil
}

// publishPurchase resolves display fields for the event and hands it to the
// publisher. Any failure here is logged and dropped; the purchase stands.
func (s *BookingService) publishPurchase(ctx context.Context, t *repository.Ticket) {
	if s.events == nil {
		return
	}
	sched, err := s.schedules.GetByID(ctx, t.ScheduleID)
	if err != nil {
		log.Printf("ticket event: load schedule %d failed: %v", t.ScheduleID, err)
		return
	}
	m, err := s.movies.GetByID(ctx, sched.MovieID)
	if err != nil {
		log.Printf("ticket event: load movie %d failed: %v", sched.MovieID, err)
		return
	}
	event := queue.TicketPurchasedEvent{
		TicketID:    t.ID,
		AccountID:   t.AccountID,
		ScheduleID:  t.ScheduleID,
		MovieTitle:  m.Title,
		Date:        sched.Date,
		Time:        sched.Time,
		Hall:        sched.Hall,
		Quantity:    t.Quantity,
		PriceCents:  sched.PriceCents,
		PurchasedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.events.PublishTicketPurchased(ctx, event); err != nil {
		log.Printf("ticket event: publish failed: %v", err)
	}
}

// MyTickets returns the purchase history for an account.
func (s *BookingService) MyTickets(ctx context.Context, accountID uint64) ([]repository.TicketDetail, error) {
	return s.tickets.ListByAccount(ctx, accountID)
}

// requireAdmin loads the acting account's role and rejects non-admins. The
// check lives here, not only in the HTTP middleware, so a misrouted request
// can never mutate the catalog.
func (s *BookingService) requireAdmin(ctx context.Context, actorID uint64) error {
	role, err := s.accounts.Role(ctx, actorID)
	if err != nil {
		return err
	}
	if role != repository.RoleAdmin {
		return ErrNotAdmin
	}
	return nil
}

// AddMovie creates a catalog entry on behalf of an administrator.
func (s *BookingService) AddMovie(ctx context.Context, actorID uint64, m *repository.Movie) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.movies.Create(ctx, m)
}

// UpdateMovie rewrites a catalog entry on behalf of an administrator. When
// the submitted fields all equal the stored row it returns
// repository.ErrNoChange; the sentinel is part of the contract and callers
// treat it as a successful no-op, not a failure.
func (s *BookingService) UpdateMovie(ctx context.Context, actorID uint64, m *repository.Movie) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.movies.Update(ctx, m)
}

// DeleteMovie removes a catalog entry on behalf of an administrator. The
// delete is blocked with ErrMovieInUse while schedules reference the movie.
func (s *BookingService) DeleteMovie(ctx context.Context, actorID, movieID uint64) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.movies.Delete(ctx, movieID)
}

// AddSchedule creates a showtime on behalf of an administrator.
func (s *BookingService) AddSchedule(ctx context.Context, actorID uint64, sched *repository.Schedule) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.schedules.Create(ctx, sched)
}

// DeleteSchedule removes a showtime on behalf of an administrator.
func (s *BookingService) DeleteSchedule(ctx context.Context, actorID, scheduleID uint64) error {
	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	return s.schedules.Delete(ctx, scheduleID)
}
