// Package auth gestiona el ciclo login -> sesión -> logout. El hub no
// custodia credenciales: delega la verificación al remote store y a cambio
// recibe el bearer token que autoriza el resto de las llamadas. El token
// local (JWT propio) solo identifica la sesión en este proceso.
package auth

import (
	"context"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/application/ports"
	"github.com/jhoicas/omnistock-hub/internal/application/session"
	"github.com/jhoicas/omnistock-hub/internal/application/tracking"
	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
	"github.com/jhoicas/omnistock-hub/pkg/jwt"
	"github.com/jhoicas/omnistock-hub/pkg/logger"
)

// Config parámetros del token de sesión local.
type Config struct {
	JWTSecret     string
	JWTIssuer     string
	JWTExpMinutes int
}

// UseCase caso de uso de autenticación.
type UseCase struct {
	remote   ports.AuthRemote
	tracker  *tracking.Coordinator
	sessions *session.Registry
	cfg      Config
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(remote ports.AuthRemote, tracker *tracking.Coordinator, sessions *session.Registry, cfg Config, log *logger.Logger) *UseCase {
	return &UseCase{remote: remote, tracker: tracker, sessions: sessions, cfg: cfg, log: log}
}

// Login autentica contra el remote store, abre la sesión local y precarga
// el Entry Store. Una precarga fallida no tumba el login: el usuario entra
// con el tracker vacío y el primer sync lo reconcilia.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, backendToken, err := uc.remote.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	sess := uc.sessions.Create(user, backendToken)
	if err := uc.tracker.Prime(ctx, sess); err != nil {
		uc.log.Warn().Err(err).Str("session", sess.ID).Msg("precarga de entradas fallida, tracker arranca vacío")
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, user.ID, sess.ID, user.Role, uc.cfg.JWTIssuer, uc.cfg.JWTExpMinutes)
	if err != nil {
		uc.sessions.Delete(sess.ID)
		return nil, err
	}

	uc.log.Info().Str("user", user.ID).Str("session", sess.ID).Msg("login exitoso")
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Logout destruye la sesión y con ella todo el estado del tracker.
// Idempotente: un logout repetido no es error.
func (uc *UseCase) Logout(sessionID string) {
	uc.sessions.Delete(sessionID)
	uc.log.Info().Str("session", sessionID).Msg("logout")
}

// Me devuelve el usuario de la sesión activa.
func (uc *UseCase) Me(sess *session.Session) dto.UserResponse {
	return toUserResponse(sess.User)
}

func toUserResponse(u entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
