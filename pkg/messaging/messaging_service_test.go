package messaging

import (
	"FoodShare-Backend/domain"
	"FoodShare-Backend/entities"
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- fakes ---

type fakeReservationRepo struct {
	reservations map[string]*entities.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: map[string]*entities.Reservation{}}
}

func (f *fakeReservationRepo) CreateReservation(ctx context.Context, r *entities.Reservation, opening *entities.Message) error {
	f.reservations[r.ID.String()] = r
	return nil
}

func (f *fakeReservationRepo) GetReservationByID(ctx context.Context, id string) (*entities.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) GetUserReservations(ctx context.Context, userID string, asProvider bool, status string, page, limit int) ([]*entities.Reservation, int64, error) {
	return nil, 0, nil
}

func (f *fakeReservationRepo) UpdateReservationStatus(ctx context.Context, id string, status string) error {
	return nil
}

func (f *fakeReservationRepo) CancelReservation(ctx context.Context, reservation *entities.Reservation) error {
	return nil
}

func (f *fakeReservationRepo) GetReservationStatistics(ctx context.Context, userID string) (map[string]interface{}, error) {
	return map[string]interface{}{}, nil
}

type fakeMessagingRepo struct {
	reservationRepo *fakeReservationRepo
	messages        []*entities.Message
}

func newFakeMessagingRepo(reservationRepo *fakeReservationRepo) *fakeMessagingRepo {
	return &fakeMessagingRepo{reservationRepo: reservationRepo}
}

func (f *fakeMessagingRepo) AddMessage(ctx context.Context, message *entities.Message) error {
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessagingRepo) threadMessages(reservationID string) []*entities.Message {
	var result []*entities.Message
	for _, m := range f.messages {
		if m.ReservationID.String() == reservationID {
			result = append(result, m)
		}
	}
	// Same ordering contract as the real repository: creation time, then id.
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() < result[j].ID.String()
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (f *fakeMessagingRepo) GetMessages(ctx context.Context, reservationID string, page, limit int) ([]*entities.Message, int64, error) {
	all := f.threadMessages(reservationID)
	count := int64(len(all))

	offset := (page - 1) * limit
	if offset >= len(all) {
		return nil, count, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], count, nil
}

func (f *fakeMessagingRepo) GetLastMessage(ctx context.Context, reservationID string) (*entities.Message, error) {
	all := f.threadMessages(reservationID)
	if len(all) == 0 {
		return nil, nil
	}
	return all[len(all)-1], nil
}

func (f *fakeMessagingRepo) GetUnreadCount(ctx context.Context, reservationID string, userID string) (int, error) {
	count := 0
	for _, m := range f.threadMessages(reservationID) {
		if m.SenderID.String() != userID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessagingRepo) MarkMessagesAsRead(ctx context.Context, reservationID string, userID string) error {
	for _, m := range f.threadMessages(reservationID) {
		if m.SenderID.String() != userID {
			m.IsRead = true
		}
	}
	return nil
}

func (f *fakeMessagingRepo) GetUserThreadReservations(ctx context.Context, userID string) ([]*entities.Reservation, error) {
	var result []*entities.Reservation
	for _, r := range f.reservationRepo.reservations {
		if r.ReservedBy.String() == userID || r.ProviderID.String() == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

// --- helpers ---

type chatEnv struct {
	svc      MessagingService
	msgRepo  *fakeMessagingRepo
	resRepo  *fakeReservationRepo
	provider uuid.UUID
	reserver uuid.UUID
}

func newChatEnv(t *testing.T) *chatEnv {
	t.Helper()
	resRepo := newFakeReservationRepo()
	msgRepo := newFakeMessagingRepo(resRepo)
	return &chatEnv{
		svc:      NewMessagingService(msgRepo, resRepo),
		msgRepo:  msgRepo,
		resRepo:  resRepo,
		provider: uuid.New(),
		reserver: uuid.New(),
	}
}

func (e *chatEnv) addReservation(t *testing.T, title string) *entities.Reservation {
	t.Helper()
	res := &entities.Reservation{
		ID:             uuid.New(),
		ListingID:      uuid.New(),
		ListingTitle:   title,
		ReservedBy:     e.reserver,
		ReservedByName: "Carlos Mendoza",
		ProviderID:     e.provider,
		ProviderName:   "María González",
		Status:         domain.ReservationStatusPending,
	}
	require.NoError(t, e.resRepo.CreateReservation(context.Background(), res, &entities.Message{}))
	return res
}

func (e *chatEnv) send(t *testing.T, reservationID string, senderID uuid.UUID, content string) *domain.Message {
	t.Helper()
	msg, err := e.svc.SendMessage(context.Background(), domain.SendMessageRequest{
		ReservationID: reservationID,
		Content:       content,
	}, senderID.String())
	require.NoError(t, err)
	return msg
}

// --- tests ---

func TestGetThreads_OneThreadPerReservation(t *testing.T) {
	env := newChatEnv(t)

	// Two reservations on the same listing are two separate conversations.
	first := env.addReservation(t, "Pan amasado")
	second := env.addReservation(t, "Pan amasado")

	env.send(t, first.ID.String(), env.reserver, "Hola, paso a las 6")
	env.send(t, second.ID.String(), env.reserver, "¿Queda para mañana?")

	threads, err := env.svc.GetThreads(context.Background(), env.provider.String())
	require.NoError(t, err)
	require.Len(t, threads, 2)

	ids := []string{threads[0].ReservationID, threads[1].ReservationID}
	assert.Contains(t, ids, first.ID.String())
	assert.Contains(t, ids, second.ID.String())
}

func TestGetThreads_OtherPartyResolution(t *testing.T) {
	env := newChatEnv(t)
	res := env.addReservation(t, "Sopa de lentejas")
	env.send(t, res.ID.String(), env.reserver, "Hola")

	providerThreads, err := env.svc.GetThreads(context.Background(), env.provider.String())
	require.NoError(t, err)
	require.Len(t, providerThreads, 1)
	assert.Equal(t, env.reserver.String(), providerThreads[0].OtherPartyID)
	assert.Equal(t, "Carlos Mendoza", providerThreads[0].OtherPartyName)

	reserverThreads, err := env.svc.GetThreads(context.Background(), env.reserver.String())
	require.NoError(t, err)
	require.Len(t, reserverThreads, 1)
	assert.Equal(t, env.provider.String(), reserverThreads[0].OtherPartyID)
	assert.Equal(t, "María González", reserverThreads[0].OtherPartyName)
}

func TestGetThreads_UnreadExcludesOwnMessages(t *testing.T) {
	env := newChatEnv(t)
	res := env.addReservation(t, "Queso fresco")

	env.send(t, res.ID.String(), env.reserver, "Hola")
	env.send(t, res.ID.String(), env.reserver, "¿Sigue disponible?")
	env.send(t, res.ID.String(), env.provider, "Sí, pasa cuando quieras")

	providerThreads, err := env.svc.GetThreads(context.Background(), env.provider.String())
	require.NoError(t, err)
	require.Len(t, providerThreads, 1)
	assert.Equal(t, 2, providerThreads[0].UnreadCount)

	reserverThreads, err := env.svc.GetThreads(context.Background(), env.reserver.String())
	require.NoError(t, err)
	require.Len(t, reserverThreads, 1)
	assert.Equal(t, 1, reserverThreads[0].UnreadCount)
}

func TestGetThreads_LastMessageAndOrdering(t *testing.T) {
	env := newChatEnv(t)
	older := env.addReservation(t, "Frutas")
	newer := env.addReservation(t, "Pan")

	env.send(t, older.ID.String(), env.reserver, "Primer mensaje")
	time.Sleep(2 * time.Millisecond)
	env.send(t, newer.ID.String(), env.reserver, "Mensaje más reciente")

	threads, err := env.svc.GetThreads(context.Background(), env.provider.String())
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, newer.ID.String(), threads[0].ReservationID)
	require.NotNil(t, threads[0].LastMessage)
	assert.Equal(t, "Mensaje más reciente", threads[0].LastMessage.Content)
	assert.Equal(t, older.ID.String(), threads[1].ReservationID)
}

func TestGetThreads_NoMessagesYet(t *testing.T) {
	env := newChatEnv(t)
	res := env.addReservation(t, "Tortillas")

	threads, err := env.svc.GetThreads(context.Background(), env.provider.String())
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, res.ID.String(), threads[0].ReservationID)
	assert.Nil(t, threads[0].LastMessage)
	assert.Nil(t, threads[0].LastActivity)
	assert.Zero(t, threads[0].UnreadCount)
}

func TestSendMessage_ResolvesReceiver(t *testing.T) {
	env := newChatEnv(t)
	res := env.addReservation(t, "Empanadas")

	fromReserver := env.send(t, res.ID.String(), env.reserver, "Hola")
	assert.Equal(t, env.provider.String(), fromReserver.ReceiverID)
	assert.Equal(t, "María González", fromReserver.ReceiverName)
	assert.Equal(t, "Carlos Mendoza", fromReserver.SenderName)

	fromProvider := env.send(t, res.ID.String(), env.provider, "Hola, bienvenido")
	assert.Equal(t, env.reserver.String(), fromProvider.ReceiverID)
	assert.Equal(t, "Carlos Mendoza", fromProvider.ReceiverName)
}

func TestSendMessage_Validation(t *testing.T) {
	env := newChatEnv(t)
	res := env.addReservation(t, "Arroz")

	_, err := env.svc.SendMessage(context.Background(), domain.SendMessageRequest{
		ReservationID: res.ID.String(),
		Content:       "   ",
	}, env.reserver.String())
	require.ErrorIs(t, err, domain.ErrEmptyMessage)

	_, err = env.svc.SendMessage(context.Background(), domain.SendMessageRequest{
		ReservationID: uuid.NewString(),
		Content:       "hola",
	}, env.reserver.String())
	require.ErrorIs(t, err, domain.ErrReservationNotFound)

	outsider := uuid.New()
	_, err = env.svc.SendMessage(context.Background(), domain.SendMessageRequest{
		ReservationID: res.ID.String(),
		Content:       "hola",
	}, outsider.String())
	require.ErrorIs(t, err, domain.ErrNotThreadParticipant)
}

func TestGetThreadMessages_AscendingAndIdempotent(t *testing.T) {
	env := newChatEnv(t)
	res := env.addReservation(t, "Cazuela")

	contents := []string{"uno", "dos", "tres"}
	for _, c := range contents {
		env.send(t, res.ID.String(), env.reserver, c)
		time.Sleep(2 * time.Millisecond)
	}

	first, count, err := env.svc.GetThreadMessages(context.Background(), res.ID.String(), env.provider.String(), 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	require.Len(t, first, 3)
	for i, c := range contents {
		assert.Equal(t, c, first[i].Content)
	}

	// Reading a thread does not change it.
	second, _, err := env.svc.GetThreadMessages(context.Background(), res.ID.String(), env.provider.String(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, _, err = env.svc.GetThreadMessages(context.Background(), res.ID.String(), uuid.NewString(), 1, 20)
	require.ErrorIs(t, err, domain.ErrNotThreadParticipant)
}

func TestGetThreadMessages_StableForEqualTimestamps(t *testing.T) {
	env := newChatEnv(t)
	res := env.addReservation(t, "Mermelada casera")

	// Messages landing in the same instant still read back in one fixed
	// order, decided by id.
	now := time.Now()
	for _, content := range []string{"a", "b", "c", "d"} {
		env.msgRepo.messages = append(env.msgRepo.messages, &entities.Message{
			ID:            uuid.New(),
			ReservationID: res.ID,
			SenderID:      env.reserver,
			ReceiverID:    env.provider,
			Content:       content,
			Timestamp:     entities.Timestamp{CreatedAt: now},
		})
	}

	first, _, err := env.svc.GetThreadMessages(context.Background(), res.ID.String(), env.provider.String(), 1, 20)
	require.NoError(t, err)
	require.Len(t, first, 4)

	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].ID, first[i].ID)
	}

	second, _, err := env.svc.GetThreadMessages(context.Background(), res.ID.String(), env.provider.String(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMarkThreadRead(t *testing.T) {
	env := newChatEnv(t)
	res := env.addReservation(t, "Pastel de choclo")

	env.send(t, res.ID.String(), env.reserver, "Hola")
	env.send(t, res.ID.String(), env.provider, "Hola, dime")

	require.NoError(t, env.svc.MarkThreadRead(context.Background(), res.ID.String(), env.provider.String()))

	unread, err := env.msgRepo.GetUnreadCount(context.Background(), res.ID.String(), env.provider.String())
	require.NoError(t, err)
	assert.Zero(t, unread)

	// The provider's own message stays unread for the reserver.
	unread, err = env.msgRepo.GetUnreadCount(context.Background(), res.ID.String(), env.reserver.String())
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	err = env.svc.MarkThreadRead(context.Background(), res.ID.String(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrNotThreadParticipant)
}
