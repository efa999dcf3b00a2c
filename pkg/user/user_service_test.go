package user

import (
	"FoodShare-Backend/domain"
	"FoodShare-Backend/entities"
	"FoodShare-Backend/pkg/jwt"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entities.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u *entities.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID.String()] = u
	return nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func newUserService() (UserService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewUserService(repo, jwt.NewJWTService()), repo
}

func TestRegister(t *testing.T) {
	svc, repo := newUserService()

	registered, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "María González",
		Email:    "maria@example.com",
		Password: "secreta123",
		Type:     domain.UserTypeIndividual,
	})
	require.NoError(t, err)
	assert.Equal(t, "María González", registered.Name)
	assert.Equal(t, domain.UserTypeIndividual, registered.Type)

	stored, err := repo.GetUserByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secreta123", stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secreta123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService()

	req := domain.RegisterRequest{
		Name:     "María González",
		Email:    "maria@example.com",
		Password: "secreta123",
		Type:     domain.UserTypeIndividual,
	}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyRegistered)
}

func TestLogin(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Carlos Mendoza",
		Email:    "carlos@example.com",
		Password: "clave456",
		Type:     domain.UserTypeBusiness,
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "carlos@example.com",
		Password: "clave456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "carlos@example.com", resp.User.Email)
	assert.Equal(t, domain.UserTypeBusiness, resp.User.Type)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Carlos Mendoza",
		Email:    "carlos@example.com",
		Password: "clave456",
		Type:     domain.UserTypeIndividual,
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "carlos@example.com", Password: "otra"})
	require.ErrorIs(t, err, domain.ErrCredentialsInvalid)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Email: "nadie@example.com", Password: "clave456"})
	require.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestMe(t *testing.T) {
	svc, repo := newUserService()

	registered, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "María González",
		Email:    "maria@example.com",
		Password: "secreta123",
		Type:     domain.UserTypeNGO,
	})
	require.NoError(t, err)

	stored, err := repo.GetUserByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), stored.ID.String())
	require.NoError(t, err)
	assert.Equal(t, registered.Email, me.Email)

	_, err = svc.Me(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
