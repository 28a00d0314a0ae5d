package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"shynora-backend/internal/email"
	"shynora-backend/internal/models"
	"shynora-backend/internal/store"
)

// UserStore is the slice of user persistence the auth service needs.
type UserStore interface {
	ByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
}

// CartReader resolves a user's cart for login/current-user payloads.
type CartReader interface {
	ItemsDetailed(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedCartItem, error)
}

// WishlistReader resolves a user's wishlist for login/current-user payloads.
type WishlistReader interface {
	ProductsDetailed(ctx context.Context, userID primitive.ObjectID) ([]models.Product, error)
}

type Service struct {
	users     UserStore
	carts     CartReader
	wishlists WishlistReader
	mail      email.Sender
	secret    []byte
}

func NewService(users UserStore, carts CartReader, wishlists WishlistReader, mail email.Sender, secret []byte) *Service {
	return &Service{users: users, carts: carts, wishlists: wishlists, mail: mail, secret: secret}
}

// UserPayload is the client-facing user shape, with cart and wishlist
// populated from their own collections.
type UserPayload struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name"`
	Email         string                     `json:"email"`
	Phone         string                     `json:"phone"`
	Avatar        string                     `json:"avatar"`
	EmailVerified bool                       `json:"isEmailVerified"`
	GoogleID      string                     `json:"googleId"`
	Addresses     []models.Address           `json:"addresses"`
	Orders        []primitive.ObjectID       `json:"orders"`
	Wishlist      []models.Product           `json:"wishlist"`
	Cart          []models.PopulatedCartItem `json:"cart"`
}

// AuthResult is what a successful verify/login/OAuth flow returns.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserPayload `json:"user"`
}

// Signup creates an unverified account and emails a one-time code. The
// second return reports whether the mail went out; a mail failure does not
// fail the signup.
func (s *Service) Signup(ctx context.Context, name, emailAddr, password string) (*models.User, bool, error) {
	name = strings.TrimSpace(name)
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	if name == "" || emailAddr == "" || password == "" {
		return nil, false, ErrMissingFields
	}

	if _, err := s.users.ByEmail(ctx, emailAddr); err == nil {
		return nil, false, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	u := &models.User{
		Name:      name,
		Email:     emailAddr,
		Password:  string(hash),
		Addresses: []models.Address{},
		Orders:    []primitive.ObjectID{},
		Cart:      []primitive.ObjectID{},
		Wishlist:  []primitive.ObjectID{},
	}
	code := issueOTP(u)

	if err := s.users.Insert(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, false, ErrEmailTaken
		}
		return nil, false, err
	}

	if err := s.mail.Send(u.Email, "Verify your email", email.OTPBody(code)); err != nil {
		log.Printf("failed to send OTP email to %s: %v", u.Email, err)
		return u, false, nil
	}
	return u, true, nil
}

// VerifyOTP checks the submitted code and, on success, marks the account
// verified, clears the code, and issues a session token.
func (s *Service) VerifyOTP(ctx context.Context, emailAddr, code string) (*AuthResult, error) {
	if emailAddr == "" || code == "" {
		return nil, ErrMissingFields
	}
	u, err := s.users.ByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := checkOTP(u, code, time.Now()); err != nil {
		return nil, err
	}

	u.EmailVerified = true
	u.OTP = models.OTP{}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return s.result(ctx, u)
}

// ResendOTP rotates the user's one-time code and re-sends the mail.
func (s *Service) ResendOTP(ctx context.Context, emailAddr string) error {
	if emailAddr == "" {
		return ErrMissingFields
	}
	u, err := s.users.ByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.EmailVerified {
		return ErrAlreadyVerified
	}
	code := issueOTP(u)
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}
	return s.mail.Send(u.Email, "Verify your email", email.OTPBody(code))
}

// Login validates credentials. Unknown users and wrong passwords collapse
// into the same generic error; the unverified case is reported distinctly.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (*AuthResult, error) {
	if emailAddr == "" || password == "" {
		return nil, ErrMissingFields
	}
	u, err := s.users.ByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.EmailVerified {
		return nil, ErrNotVerified
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.result(ctx, u)
}

// CurrentUser resolves the payload for an already-authenticated user id.
func (s *Service) CurrentUser(ctx context.Context, userID primitive.ObjectID) (*UserPayload, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	payload := s.payload(ctx, u)
	return &payload, nil
}

// ProfileUpdate carries the mutable profile fields; nil means "leave as is".
type ProfileUpdate struct {
	Name      *string           `json:"name"`
	Phone     *string           `json:"phone"`
	Addresses *[]models.Address `json:"addresses"`
}

// UpdateProfile applies a partial profile update, normalizing the address
// list so at most one entry stays default.
func (s *Service) UpdateProfile(ctx context.Context, userID primitive.ObjectID, upd ProfileUpdate) (*UserPayload, error) {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if upd.Name != nil {
		u.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Phone != nil {
		u.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.Addresses != nil {
		u.Addresses = NormalizeAddresses(*upd.Addresses)
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	payload := s.payload(ctx, u)
	return &payload, nil
}

// Token issues a session token for the user.
func (s *Service) Token(userID primitive.ObjectID) (string, error) {
	return GenerateToken(s.secret, userID.Hex())
}

// ParseToken validates a session token against the service secret.
func (s *Service) ParseToken(tokenStr string) (primitive.ObjectID, error) {
	hex, err := ParseToken(s.secret, tokenStr)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(hex)
}

func (s *Service) result(ctx context.Context, u *models.User) (*AuthResult, error) {
	token, err := s.Token(u.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: s.payload(ctx, u)}, nil
}

// payload populates cart and wishlist best-effort; a fetch failure leaves
// the lists empty rather than failing the auth flow.
func (s *Service) payload(ctx context.Context, u *models.User) UserPayload {
	p := UserPayload{
		ID:            u.ID.Hex(),
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Avatar:        u.Avatar,
		EmailVerified: u.EmailVerified,
		GoogleID:      u.GoogleID,
		Addresses:     u.Addresses,
		Orders:        u.Orders,
		Wishlist:      []models.Product{},
		Cart:          []models.PopulatedCartItem{},
	}
	if p.Addresses == nil {
		p.Addresses = []models.Address{}
	}
	if p.Orders == nil {
		p.Orders = []primitive.ObjectID{}
	}
	if s.carts != nil {
		if items, err := s.carts.ItemsDetailed(ctx, u.ID); err == nil {
			p.Cart = items
		} else {
			log.Printf("could not fetch cart for %s: %v", u.ID.Hex(), err)
		}
	}
	if s.wishlists != nil {
		if products, err := s.wishlists.ProductsDetailed(ctx, u.ID); err == nil {
			p.Wishlist = products
		} else {
			log.Printf("could not fetch wishlist for %s: %v", u.ID.Hex(), err)
		}
	}
	return p
}
