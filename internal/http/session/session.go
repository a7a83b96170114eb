// Package session управляет сессионной cookie с JWT и flash-сообщениями.
//
// Токен хранится в отдельной cookie (HttpOnly, SameSite=Strict), срок её
// жизни совпадает со сроком жизни токена. Flash-сообщения живут в cookie
// gorilla/sessions и удаляются после первого чтения.
package session

import (
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const flashSession = "flash"

// Manager выставляет и читает сессионные cookie.
type Manager struct {
	cookieName string
	ttl        time.Duration
	secure     bool
	store      *sessions.CookieStore
}

// NewManager создаёт Manager. secret подписывает cookie flash-сообщений.
func NewManager(cookieName string, ttl time.Duration, secure bool, secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
	return &Manager{
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		store:      store,
	}
}

// SetToken кладёт токен в cookie.
func (m *Manager) SetToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearToken удаляет cookie с токеном.
func (m *Manager) ClearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Token возвращает токен из cookie запроса или пустую строку.
func (m *Manager) Token(r *http.Request) string {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// AddFlash сохраняет сообщение для показа на следующей странице.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	s, err := m.store.Get(r, flashSession)
	if err != nil && s == nil {
		return err
	}
	s.AddFlash(msg)
	return s.Save(r, w)
}

// PopFlash возвращает и удаляет первое сохранённое сообщение.
func (m *Manager) PopFlash(w http.ResponseWriter, r *http.Request) string {
	s, err := m.store.Get(r, flashSession)
	if err != nil && s == nil {
		return ""
	}
	flashes := s.Flashes()
	if len(flashes) == 0 {
		return ""
	}
	_ = s.Save(r, w)
	msg, _ := flashes[0].(string)
	return msg
}
