package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockyhq/stocky-api/internal/application/dto"
	"github.com/stockyhq/stocky-api/internal/domain"
	"github.com/stockyhq/stocky-api/internal/domain/entity"
)

// ── fakes ──────────────────────────────────────────────────────────

type memUserRepo struct {
	users map[string]*entity.User // por ID
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetByUsernameOrEmail(_ context.Context, username, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func testJWTCfg() JWTConfig {
	return JWTConfig{Secret: "secreto", ExpMinutes: 5, RefreshExpMinutes: 60, Issuer: "stocky-api"}
}

// ── tests ──────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioConHash(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewUseCase(repo, testJWTCfg())

	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "ana", Email: "ana@example.com", Password: "clave123",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana", resp.Username)
	assert.Equal(t, entity.RoleUser, resp.Role)

	stored, err := repo.GetByUsername(context.Background(), "ana")
	require.NoError(t, err)
	assert.NotEqual(t, "clave123", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewUseCase(repo, testJWTCfg())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "ana", Email: "ana@example.com", Password: "clave123",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Username: "ana", Email: "otra@example.com", Password: "clave123",
	})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestLogin_CorrectoEmiteAccessYRefresh(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewUseCase(repo, testJWTCfg())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "ana", Email: "ana@example.com", Password: "clave123",
	})
	require.NoError(t, err)

	resp, refresh, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, "ana", resp.User.Username)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewUseCase(repo, testJWTCfg())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "ana", Email: "ana@example.com", Password: "clave123",
	})
	require.NoError(t, err)

	_, _, err = uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := NewUseCase(newMemUserRepo(), testJWTCfg())
	_, _, err := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_EmiteAccessNuevo(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewUseCase(repo, testJWTCfg())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "ana", Email: "ana@example.com", Password: "clave123",
	})
	require.NoError(t, err)
	_, refresh, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)

	resp, err := uc.Refresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestRefresh_RechazaAccessToken(t *testing.T) {
	repo := newMemUserRepo()
	uc := NewUseCase(repo, testJWTCfg())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "ana", Email: "ana@example.com", Password: "clave123",
	})
	require.NoError(t, err)
	loginResp, _, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "clave123"})
	require.NoError(t, err)

	// un access token no sirve como refresh
	_, err = uc.Refresh(context.Background(), loginResp.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
