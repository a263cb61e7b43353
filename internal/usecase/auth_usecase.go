package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/dhanashrishah1306-svg/SAMVED/internal/converter"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/delivery/dto"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/entity"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/domain/repository"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/infrastructure/cache"
	"github.com/dhanashrishah1306-svg/SAMVED/internal/service"
	"github.com/dhanashrishah1306-svg/SAMVED/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
	ErrAadharAlreadyExists   = errors.New("aadhar number already exists")
	ErrQRCodeUnavailable     = errors.New("could not allocate a patient QR code, try again")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenRevoked          = errors.New("token has been revoked")
	ErrUserNotFound          = errors.New("user not found")
	ErrRoleNotFound          = errors.New("role not found")
	ErrInvalidDateFormat     = errors.New("invalid date format, use YYYY-MM-DD")
)

const (
	dateLayout       = "2006-01-02"
	qrCodeAttempts   = 5
	bearerTokenType  = "Bearer"
	qrCodeSpace      = 90000
	qrCodeFirstValue = 10000
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
}

type authUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	roleRepo           repository.RoleRepository
	patientProfileRepo repository.PatientProfileRepository
	jwtService         *jwt.JWTService
	sessions           *cache.SessionStore
	auditService       service.AuditService
	now                func() time.Time
	qrCode             func() string
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	patientProfileRepo repository.PatientProfileRepository,
	jwtService *jwt.JWTService,
	sessions *cache.SessionStore,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		roleRepo:           roleRepo,
		patientProfileRepo: patientProfileRepo,
		jwtService:         jwtService,
		sessions:           sessions,
		auditService:       auditService,
		now:                time.Now,
		qrCode:             randomQRCode,
	}
}

// dummyPasswordHash is compared against when the login name is unknown so
// both paths pay for one bcrypt comparison.
var dummyPasswordHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("unknown-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})

func randomQRCode() string {
	return fmt.Sprintf("%s%05d", entity.QRCodePrefix, qrCodeFirstValue+rand.IntN(qrCodeSpace))
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	role, err := u.roleRepo.FindByID(tx, entity.RoleIDPatient)
	if err != nil {
		u.log.Warnf("Failed to find patient role: %+v", err)
		return nil, err
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	qrCode, err := u.allocateQRCode(tx)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	user := &entity.User{
		RoleID:   role.ID,
		Username: strings.TrimSpace(req.Username),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashedPassword),
		FullName: req.FullName,
		Phone:    req.Phone,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "username") {
			return nil, ErrUsernameAlreadyExists
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isForeignKeyError(err, "role") {
			return nil, ErrRoleNotFound
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	profile := &entity.PatientProfile{
		UserID:                user.ID,
		QRCode:                qrCode,
		DateOfBirth:           dob,
		Gender:                req.Gender,
		BloodGroup:            req.BloodGroup,
		Address:               req.Address,
		WardNumber:            req.WardNumber,
		Zone:                  req.Zone,
		AadharNumber:          req.AadharNumber,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		Allergies:             req.Allergies,
		ChronicConditions:     req.ChronicConditions,
	}

	if err := u.patientProfileRepo.Create(tx, profile); err != nil {
		if isDuplicateKeyError(err, "aadhar") {
			return nil, ErrAadharAlreadyExists
		}
		if isDuplicateKeyError(err, "qr_code") {
			return nil, ErrQRCodeUnavailable
		}
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	user.Role = *role
	user.PatientProfile = profile
	response := converter.UserToResponse(user)

	if err := u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Patient registered: user=%s, qr=%s", user.ID, qrCode)
	return response, nil
}

// allocateQRCode picks a random patient code that is not taken yet.
func (u *authUsecase) allocateQRCode(tx *gorm.DB) (string, error) {
	for i := 0; i < qrCodeAttempts; i++ {
		code := u.qrCode()
		existing, err := u.patientProfileRepo.FindByQRCode(tx, code)
		if err != nil {
			u.log.Warnf("Failed to check QR code: %+v", err)
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", ErrQRCodeUnavailable
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// Read-only lookup, no transaction needed
	user, err := u.userRepo.FindByLogin(u.db.WithContext(ctx), strings.TrimSpace(req.Username))
	if err != nil {
		u.log.Warnf("Failed to find user by login: %+v", err)
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash(), []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// A portal mismatch looks like a bad password so roles are not disclosed
	if req.UserType != "" {
		roleID, ok := entity.RoleIDByUserType(req.UserType)
		if !ok || roleID != user.RoleID {
			return nil, ErrInvalidCredentials
		}
	}

	if !user.Active() {
		return nil, ErrAccountInactive
	}

	response, err := u.issueTokens(ctx, jwt.Identity{UserID: user.ID, Username: user.Username, RoleID: user.RoleID})
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.UpdateLastLogin(u.db.WithContext(ctx), user.ID, u.now()); err != nil {
		u.log.Warnf("Failed to update last login: %+v", err)
	}

	response.User = converter.UserToResponse(user)
	u.log.Infof("User logged in: user=%s, role=%d", user.ID, user.RoleID)
	return response, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, identity jwt.Identity) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(identity)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(identity)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	session := cache.Session{
		UserID:   identity.UserID,
		Username: identity.Username,
		RoleID:   identity.RoleID,
		Role:     entity.RoleNameByID(identity.RoleID),
	}
	if err := u.sessions.Save(ctx, session, accessTokenID, u.jwtService.GetAccessExpiry(), refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store session: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    bearerTokenType,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

// Logout revokes the current access session and, when the refresh token of
// the same user is supplied, its refresh marker.
func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID, refreshToken string) error {
	var refreshTokenID string
	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == userID {
			refreshTokenID = claims.TokenID
		}
	}

	if err := u.sessions.Revoke(ctx, userID, accessTokenID, refreshTokenID); err != nil {
		u.log.Warnf("Failed to revoke session: %+v", err)
		return err
	}

	u.log.Infof("User logged out: user=%s", userID)
	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	// Single use: the marker is deleted before new tokens are issued
	consumed, err := u.sessions.ConsumeRefresh(ctx, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to consume refresh token: %+v", err)
		return nil, err
	}
	if !consumed {
		return nil, ErrTokenRevoked
	}

	// Role and status may have changed since the token was issued
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.Active() {
		return nil, ErrAccountInactive
	}

	return u.issueTokens(ctx, jwt.Identity{UserID: user.ID, Username: user.Username, RoleID: user.RoleID})
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}
