package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/httpclient"
	"nearfix-client/internal/common/logger"
	"nearfix-client/internal/common/poll"
	"nearfix-client/internal/session"
)

type backendStub struct {
	sendCalls   int64
	verifyCalls int64
	isNewUser   bool
	failVerify  bool
	failSend    bool
}

func (b *backendStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/otp/send":
			atomic.AddInt64(&b.sendCalls, 1)
			if b.failSend {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"message":"Too many attempts"}`))
				return
			}
			w.Write([]byte(`{}`))
		case "/auth/otp/verify":
			atomic.AddInt64(&b.verifyCalls, 1)
			if b.failVerify {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Invalid OTP"}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"token":       "session-token",
				"phoneNumber": "9876543210",
				"role":        "CUSTOMER",
				"isNewUser":   b.isNewUser,
			})
		case "/auth/otp/register-with-role":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"token":       "session-token",
				"phoneNumber": body["phoneNumber"],
				"role":        body["role"],
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func newController(t *testing.T, stub *backendStub) (*Controller, *session.Store) {
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	sess := session.New(filepath.Join(t.TempDir(), "session.json"), logger.NewNoOpLogger())
	http := httpclient.New(server.URL, 5*time.Second, sess, logger.NewNoOpLogger())
	client := api.NewClient(http)
	cooldown := poll.NewCountdownWithTick(30, time.Hour)

	return NewController(client.Auth, sess, cooldown, logger.NewNoOpLogger()), sess
}

func enterOTP(c *Controller, otp string) {
	for i, r := range otp {
		c.EnterDigit(context.Background(), i, r)
	}
}

func TestSubmitPhone_RejectsInvalidWithoutRequest(t *testing.T) {
	stub := &backendStub{}
	c, _ := newController(t, stub)

	c.SubmitPhone(context.Background(), "1234567890")
	assert.Equal(t, StepLogin, c.Step())
	assert.NotEmpty(t, c.Error())
	assert.Zero(t, atomic.LoadInt64(&stub.sendCalls), "invalid phone must not hit the network")
}

func TestSubmitPhone_MovesToOTPAndStartsCooldown(t *testing.T) {
	c, _ := newController(t, &backendStub{})

	c.SubmitPhone(context.Background(), "9876543210")
	assert.Equal(t, StepOTP, c.Step())
	assert.Equal(t, "9876543210", c.Phone())
	assert.Equal(t, 30, c.ResendRemaining())
	assert.False(t, c.CanResend())
}

func TestSubmitPhone_FailureStaysOnLogin(t *testing.T) {
	c, _ := newController(t, &backendStub{failSend: true})

	c.SubmitPhone(context.Background(), "9876543210")
	assert.Equal(t, StepLogin, c.Step())
	assert.Equal(t, "Too many attempts", c.Error())
}

func TestEnterDigit_AutoAdvanceAndAutoSubmitOnce(t *testing.T) {
	stub := &backendStub{}
	c, sess := newController(t, stub)
	c.SubmitPhone(context.Background(), "9876543210")

	c.EnterDigit(context.Background(), 0, '1')
	assert.Equal(t, 1, c.Focus())
	c.EnterDigit(context.Background(), 1, '2')
	assert.Equal(t, 2, c.Focus())
	c.EnterDigit(context.Background(), 2, '3')
	assert.Equal(t, 3, c.Focus())
	assert.Zero(t, atomic.LoadInt64(&stub.verifyCalls), "no submit before the 4th digit")

	c.EnterDigit(context.Background(), 3, '4')
	assert.Equal(t, int64(1), atomic.LoadInt64(&stub.verifyCalls), "4th digit auto-submits exactly once")
	assert.Equal(t, StepDone, c.Step())
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, session.RoleCustomer, sess.Role())
}

func TestEnterDigit_IgnoresNonDigit(t *testing.T) {
	c, _ := newController(t, &backendStub{})
	c.SubmitPhone(context.Background(), "9876543210")

	c.EnterDigit(context.Background(), 0, 'x')
	assert.Equal(t, 0, c.Focus(), "non-digit must not advance focus")
	assert.Equal(t, "", c.Digits()[0])
}

func TestBackspace(t *testing.T) {
	c, _ := newController(t, &backendStub{})
	c.SubmitPhone(context.Background(), "9876543210")

	c.EnterDigit(context.Background(), 0, '1')
	c.EnterDigit(context.Background(), 1, '2')

	// Non-empty box: clears in place.
	c.Backspace(1)
	assert.Equal(t, "", c.Digits()[1])
	assert.Equal(t, 2, c.Focus())

	// Empty box at index > 0: moves focus back.
	c.Backspace(1)
	assert.Equal(t, 0, c.Focus())

	// Index 0 never goes negative.
	c.Backspace(0)
	assert.Equal(t, 0, c.Focus())
}

func TestVerifyFailure_ClearsOTPForRetry(t *testing.T) {
	stub := &backendStub{failVerify: true}
	c, _ := newController(t, stub)
	c.SubmitPhone(context.Background(), "9876543210")

	enterOTP(c, "1234")
	assert.Equal(t, StepOTP, c.Step())
	assert.Equal(t, "Invalid OTP", c.Error())
	assert.Equal(t, []string{"", "", "", ""}, c.Digits())

	// A fresh fill auto-submits again.
	stub.failVerify = false
	enterOTP(c, "1234")
	assert.Equal(t, StepDone, c.Step())
	assert.Equal(t, int64(2), atomic.LoadInt64(&stub.verifyCalls))
}

func TestResend_GatedByCooldown(t *testing.T) {
	stub := &backendStub{}
	server := httptest.NewServer(stub.handler())
	t.Cleanup(server.Close)

	sess := session.New(filepath.Join(t.TempDir(), "session.json"), logger.NewNoOpLogger())
	client := api.NewClient(httpclient.New(server.URL, 5*time.Second, sess, logger.NewNoOpLogger()))
	cooldown := poll.NewCountdownWithTick(2, 5*time.Millisecond)
	c := NewController(client.Auth, sess, cooldown, logger.NewNoOpLogger())

	c.SubmitPhone(context.Background(), "9876543210")
	require.Equal(t, int64(1), atomic.LoadInt64(&stub.sendCalls))

	// Cooldown still running: resend is a no-op.
	c.Resend(context.Background())
	assert.Equal(t, int64(1), atomic.LoadInt64(&stub.sendCalls))

	require.Eventually(t, c.CanResend, time.Second, time.Millisecond)

	c.Resend(context.Background())
	assert.Equal(t, int64(2), atomic.LoadInt64(&stub.sendCalls))
	assert.False(t, c.CanResend(), "successful resend resets the cooldown")
}

func TestNewUserFlow_RoleSelection(t *testing.T) {
	c, sess := newController(t, &backendStub{isNewUser: true})
	c.SubmitPhone(context.Background(), "9876543210")

	enterOTP(c, "1234")
	assert.Equal(t, StepRole, c.Step())
	assert.False(t, sess.IsAuthenticated())

	// Only the two offered roles are accepted.
	c.ChooseRole(context.Background(), session.RoleAdmin)
	assert.Equal(t, StepRole, c.Step())
	assert.NotEmpty(t, c.Error())

	c.ChooseRole(context.Background(), session.RoleCustomer)
	assert.Equal(t, StepDone, c.Step())
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, "9876543210", sess.Phone())
	assert.Equal(t, session.RoleCustomer, sess.Role())
}
