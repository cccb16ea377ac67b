package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Learning202413/Final-Impersos-S.R.L/internal/application/dto"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/entity"
	"github.com/Learning202413/Final-Impersos-S.R.L/internal/domain/repository"
	"github.com/Learning202413/Final-Impersos-S.R.L/pkg/jwt"
)

// JWTConfig configuración para la generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Registrar crea un usuario: hashea la contraseña con bcrypt y persiste.
func (uc *UseCase) Registrar(ctx context.Context, email, nombre, password, rol string) (*dto.LoginResponse, error) {
	if email == "" || password == "" {
		return nil, domain.ErrEntradaInvalida
	}
	existente, err := uc.usuarioRepo.ObtenerPorEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicado
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if nombre == "" {
		nombre = email
	}
	if rol == "" {
		rol = entity.RolVentas
	}
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Email:        email,
		Nombre:       nombre,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
		CreatedAt:    time.Now(),
	}
	if err := uc.usuarioRepo.Crear(ctx, usuario); err != nil {
		return nil, err
	}
	return uc.respuestaConToken(usuario)
}

// Login verifica email/contraseña, genera el JWT y retorna token + perfil.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.ObtenerPorEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUsuarioNoEncontrado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrCredencialesInvalid
	}
	if !usuario.Activo {
		return nil, domain.ErrNoAutorizado
	}
	return uc.respuestaConToken(usuario)
}

func (uc *UseCase) respuestaConToken(u *entity.Usuario) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Nombre, u.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:  token,
		ID:     u.ID,
		Nombre: u.Nombre,
		Email:  u.Email,
		Rol:    u.Rol,
	}, nil
}
