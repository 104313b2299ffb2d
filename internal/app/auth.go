package app

import (
	"bufio"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16

	authRealm = "Parkering Forvaltning"
)

var (
	ErrInvalidHash     = errors.New("invalid hash format")
	ErrNotArgon2id     = errors.New("not an argon2id hash")
	ErrInvalidAuthFile = errors.New("invalid auth file format (expected: username:hash)")
)

// Auth guards the management pages. Without a hash (dev mode) everything is let through.
type Auth struct {
	User string
	hash string
}

// LoadAuth reads "username:hash" from path. A missing file yields an open Auth and a warning.
func LoadAuth(path string) (*Auth, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("no auth file found, management pages are UNPROTECTED (local development only)",
				slog.String("expected", path),
				slog.String("fix", "run: parkering hash-password"),
			)
			return &Auth{}, nil
		}
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}

	user, hash, ok := strings.Cut(strings.TrimSpace(string(data)), ":")
	if !ok || user == "" || hash == "" {
		return nil, ErrInvalidAuthFile
	}

	slog.Info("basic auth enabled for management pages", slog.String("user", user), slog.String("file", path))
	return &Auth{User: user, hash: hash}, nil
}

// Enabled reports whether credentials are required
func (a *Auth) Enabled() bool {
	return a != nil && a.hash != ""
}

// Check verifies a username/password pair in constant time
func (a *Auth) Check(user, pass string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(a.User)) == 1
	if !userMatch {
		return false
	}
	ok, err := VerifyPassword(pass, a.hash)
	if err != nil {
		slog.Error("error verifying password", slog.Any("error", err))
		return false
	}
	return ok
}

// Middleware enforces Basic Auth when enabled
func (a *Auth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !a.Enabled() {
				return next(c)
			}

			user, pass, ok := c.Request().BasicAuth()
			if !ok || !a.Check(user, pass) {
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="`+authRealm+`"`)
				slog.Warn("failed auth attempt", slog.String("remote", c.RealIP()), slog.String("user", user))
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			return next(c)
		}
	}
}

// argon2Hash is the decoded form of $argon2id$v=19$m=65536,t=1,p=4$salt$hash
type argon2Hash struct {
	memory, time uint32
	threads      uint8
	salt, key    []byte
}

func (h argon2Hash) String() string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(h.salt),
		base64.RawStdEncoding.EncodeToString(h.key))
}

func parseArgon2Hash(encoded string) (argon2Hash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return argon2Hash{}, ErrInvalidHash
	}
	if parts[1] != "argon2id" {
		return argon2Hash{}, ErrNotArgon2id
	}

	var h argon2Hash
	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.time, &threads); err != nil {
		return argon2Hash{}, fmt.Errorf("failed to parse hash parameters: %w", err)
	}
	h.threads = uint8(threads)

	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return argon2Hash{}, fmt.Errorf("failed to decode salt: %w", err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return argon2Hash{}, fmt.Errorf("failed to decode hash: %w", err)
	}
	return h, nil
}

// HashPassword creates an Argon2id hash of the password with a random salt
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	h := argon2Hash{
		memory:  argon2Memory,
		time:    argon2Time,
		threads: argon2Threads,
		salt:    salt,
		key:     argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen),
	}
	return h.String(), nil
}

// VerifyPassword verifies a password against an Argon2id hash
func VerifyPassword(password, encoded string) (bool, error) {
	h, err := parseArgon2Hash(encoded)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(password), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
	return subtle.ConstantTimeCompare(h.key, computed) == 1, nil
}

// CreateAuthFile writes username:hash to path (mode 0400). Without overwrite an
// existing file is only replaced after confirmation on stdin.
func CreateAuthFile(path, username, password string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			fmt.Printf("Auth file already exists: %s\n", path)
			fmt.Print("Overwrite? (y/N): ")
			response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				return fmt.Errorf("aborted")
			}
		}
		// read-only files cannot be truncated in place
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing auth file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := os.WriteFile(path, []byte(username+":"+hash+"\n"), 0400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}

	fmt.Printf("✅ Auth file created: %s (mode: 0400 read-only)\n", path)
	fmt.Printf("   Username: %s\n", username)
	return nil
}
