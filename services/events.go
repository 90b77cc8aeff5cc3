package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"openinvite/db"
	"openinvite/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrEventNotVisible = errors.New("event is not visible to user")
	ErrNotEventCreator = errors.New("only the creator can delete the event")
)

var normalizationErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "event_normalization_errors_total",
	Help: "Total number of malformed event records rejected by the normalizer",
})

type EventService struct {
	friendService *FriendService
}

func NewEventService() *EventService {
	return &EventService{
		friendService: NewFriendService(),
	}
}

// EventInput - данные формы создания события
type EventInput struct {
	Title    string    `json:"title"`
	Location string    `json:"location"`
	Time     time.Time `json:"time"`
	Type     string    `json:"type"`
	Notes    string    `json:"notes"`
}

// Validate отсекает некорректную форму до обращения к БД
func (in *EventInput) Validate() error {
	if in.Title == "" {
		return errors.New("title is required")
	}
	if in.Location == "" {
		return errors.New("location is required")
	}
	if in.Time.IsZero() {
		return errors.New("time is required")
	}
	if in.Type == "" {
		in.Type = models.TypeOther
	}
	if !models.KnownEventType(in.Type) {
		return fmt.Errorf("unknown event type: %s", in.Type)
	}
	return nil
}

// CreateEvent создает событие и оповещает создателя и его друзей
func (es *EventService) CreateEvent(ctx context.Context, userID int64, input EventInput) (*models.Event, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	event := &models.Event{
		CreatorID: userID,
		Title:     input.Title,
		Location:  input.Location,
		Time:      input.Time,
		Type:      input.Type,
		Notes:     input.Notes,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := db.GetWriteDB(ctx).Create(event).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	notifyTableChanged(ctx, "events", "insert", es.interestedUserIDs(ctx, userID))
	return event, nil
}

// DeleteEvent удаляет событие. Доступно только создателю.
func (es *EventService) DeleteEvent(ctx context.Context, userID, eventID int64) error {
	var event models.Event
	err := db.GetWriteDB(ctx).First(&event, eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load event: %w", err)
	}
	if event.CreatorID != userID {
		return ErrNotEventCreator
	}

	err = db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&models.Attendee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	notifyTableChanged(ctx, "events", "delete", es.interestedUserIDs(ctx, userID))
	return nil
}

// JoinEvent добавляет пользователя в участники. Идемпотентно: повторный join
// не создает дубликата и не считается ошибкой.
func (es *EventService) JoinEvent(ctx context.Context, userID, eventID int64) error {
	event, err := es.visibleEvent(ctx, userID, eventID)
	if err != nil {
		return err
	}

	var existing int64
	err = db.GetReadOnlyDB(ctx).Model(&models.Attendee{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).Count(&existing).Error
	if err != nil {
		return fmt.Errorf("failed to check attendance: %w", err)
	}
	if existing > 0 {
		return nil
	}

	err = db.GetWriteDB(ctx).Create(&models.Attendee{EventID: eventID, UserID: userID}).Error
	if err != nil {
		return fmt.Errorf("failed to join event: %w", err)
	}

	notifyTableChanged(ctx, "attendees", "insert", es.interestedUserIDs(ctx, event.CreatorID))
	return nil
}

// LeaveEvent удаляет точную пару (event_id, user_id). Если пользователь не
// участвовал - no-op.
func (es *EventService) LeaveEvent(ctx context.Context, userID, eventID int64) error {
	event, err := es.visibleEvent(ctx, userID, eventID)
	if err != nil {
		return err
	}

	err = db.GetWriteDB(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.Attendee{}).Error
	if err != nil {
		return fmt.Errorf("failed to leave event: %w", err)
	}

	notifyTableChanged(ctx, "attendees", "delete", es.interestedUserIDs(ctx, event.CreatorID))
	return nil
}

// visibleEvent загружает событие и проверяет, что его создатель входит в
// множество видимых для userID
func (es *EventService) visibleEvent(ctx context.Context, userID, eventID int64) (*models.Event, error) {
	var event models.Event
	err := db.GetReadOnlyDB(ctx).First(&event, eventID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load event: %w", err)
	}

	friendships, err := es.friendService.GetFriendships(ctx, userID)
	if err != nil {
		return nil, err
	}
	visible := VisibleCreators(userID, friendships)
	if _, ok := visible[event.CreatorID]; !ok {
		return nil, ErrEventNotVisible
	}
	return &event, nil
}

// VisibleEvents строит нормализованный снапшот событий, видимых пользователю:
// события его самого и подтвержденных друзей, с участниками.
func (es *EventService) VisibleEvents(ctx context.Context, userID int64) ([]models.EventView, error) {
	friendships, err := es.friendService.GetFriendships(ctx, userID)
	if err != nil {
		return nil, err
	}
	creatorIDs := VisibleCreatorIDs(userID, friendships)

	var events []models.Event
	err = db.GetReadOnlyDB(ctx).
		Where("creator_id IN ?", creatorIDs).
		Order("time ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	if len(events) == 0 {
		return []models.EventView{}, nil
	}

	eventIDs := make([]int64, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
	}

	var attendees []models.Attendee
	err = db.GetReadOnlyDB(ctx).
		Where("event_id IN ?", eventIDs).
		Order("id ASC").
		Find(&attendees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get attendees: %w", err)
	}

	byEvent := make(map[int64][]models.Attendee, len(events))
	for _, a := range attendees {
		byEvent[a.EventID] = append(byEvent[a.EventID], a)
	}

	creators, err := es.loadCreators(ctx, creatorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.EventView, 0, len(events))
	for _, event := range events {
		view, err := NormalizeEvent(event, byEvent[event.ID])
		if err != nil {
			// Битая запись не роняет ленту, но и не пропадает молча
			log.Printf("ERROR: skipping malformed event: %v", err)
			normalizationErrors.Inc()
			continue
		}
		if creator, ok := creators[event.CreatorID]; ok {
			view.CreatorName = creator.FullName
			view.CreatorPhoto = creator.Avatar()
		}
		views = append(views, view)
	}
	return views, nil
}

func (es *EventService) loadCreators(ctx context.Context, creatorIDs []int64) (map[int64]models.User, error) {
	var users []models.User
	err := db.GetReadOnlyDB(ctx).Where("id IN ?", creatorIDs).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get creators: %w", err)
	}
	byID := make(map[int64]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// Feed возвращает ленту пользователя, сгруппированную по неделям.
// Сначала пробуем кешированный снапшот, при промахе строим из БД.
func (es *EventService) Feed(ctx context.Context, userID int64) (*models.FeedResponse, error) {
	if cached, err := getFeedSnapshot(ctx, userID); err == nil && cached != nil {
		return cached, nil
	}

	feed, err := es.buildFeed(ctx, userID)
	if err != nil {
		return nil, err
	}

	go cacheFeedSnapshot(context.Background(), userID, feed)
	return feed, nil
}

func (es *EventService) buildFeed(ctx context.Context, userID int64) (*models.FeedResponse, error) {
	views, err := es.VisibleEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.FeedResponse{
		Weeks: GroupByWeek(views),
		Total: len(views),
	}, nil
}

// EventsOnDate возвращает видимые события на конкретную локальную дату
func (es *EventService) EventsOnDate(ctx context.Context, userID int64, day time.Time) ([]models.EventView, error) {
	views, err := es.VisibleEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	return EventsOnDay(views, day), nil
}

// interestedUserIDs возвращает пользователей, чьи ленты затрагивает изменение
// событий creatorID: сам создатель и его подтвержденные друзья.
func (es *EventService) interestedUserIDs(ctx context.Context, creatorID int64) []int64 {
	ids := []int64{creatorID}
	friendships, err := es.friendService.GetFriendships(ctx, creatorID)
	if err != nil {
		log.Printf("ERROR: failed to resolve interested users for %d: %v", creatorID, err)
		return ids
	}
	for _, f := range friendships {
		if f.Status == models.FriendshipAccepted && f.UserID != f.FriendID {
			ids = append(ids, f.Other(creatorID))
		}
	}
	return ids
}
