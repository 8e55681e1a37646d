// Package auth implements the login flow: phone entry, OTP verification
// and, for new users, role selection. The controller is a small state
// machine driven by UI events; all steps run on the UI goroutine.
package auth

import (
	"context"
	"strings"

	"nearfix-client/internal/api"
	"nearfix-client/internal/common/errors"
	"nearfix-client/internal/common/logger"
	"nearfix-client/internal/common/poll"
	"nearfix-client/internal/common/validation"
	"nearfix-client/internal/session"
)

type Step string

const (
	StepLogin Step = "login"
	StepOTP   Step = "otp"
	StepRole  Step = "role"
	StepDone  Step = "done"
)

const otpLength = 4

type Controller struct {
	auth     *api.AuthClient
	session  *session.Store
	cooldown *poll.Countdown
	logger   logger.Logger

	step      Step
	phone     string
	digits    [otpLength]string
	focus     int
	submitted bool
	loading   bool
	errMsg    string
}

func NewController(authClient *api.AuthClient, sess *session.Store, cooldown *poll.Countdown, log logger.Logger) *Controller {
	return &Controller{
		auth:     authClient,
		session:  sess,
		cooldown: cooldown,
		logger:   log,
		step:     StepLogin,
	}
}

func (c *Controller) Step() Step    { return c.step }
func (c *Controller) Phone() string { return c.phone }
func (c *Controller) Error() string { return c.errMsg }
func (c *Controller) Loading() bool { return c.loading }
func (c *Controller) Focus() int    { return c.focus }
func (c *Controller) Digits() []string {
	out := make([]string, otpLength)
	copy(out, c.digits[:])
	return out
}

// ResendRemaining reports the seconds left on the resend cooldown.
func (c *Controller) ResendRemaining() int { return c.cooldown.Remaining() }
func (c *Controller) CanResend() bool      { return c.cooldown.Ready() }

// SubmitPhone validates the number and requests an OTP. On failure the
// flow stays on the login step with an inline error.
func (c *Controller) SubmitPhone(ctx context.Context, phone string) {
	phone = strings.TrimSpace(phone)
	if result := validation.Phone(phone); !result.Valid {
		c.errMsg = result.First()
		return
	}

	c.loading = true
	c.errMsg = ""
	err := c.auth.SendOTP(ctx, phone)
	c.loading = false

	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return
	}

	c.phone = phone
	c.step = StepOTP
	c.resetOTP()
	c.cooldown.Reset()
	c.logger.Info("otp sent", map[string]interface{}{"phone": phone})
}

// EnterDigit handles a keystroke in OTP box i. Non-digits are ignored and
// do not advance focus. Entering the fourth digit auto-submits exactly
// once per fill.
func (c *Controller) EnterDigit(ctx context.Context, i int, r rune) {
	if c.step != StepOTP || i < 0 || i >= otpLength {
		return
	}
	if r < '0' || r > '9' {
		return
	}

	c.digits[i] = string(r)
	if i < otpLength-1 {
		c.focus = i + 1
	}

	if c.filled() && !c.submitted {
		c.submitted = true
		c.verify(ctx)
	}
}

// Backspace clears box i; on an already-empty box it moves focus back.
func (c *Controller) Backspace(i int) {
	if c.step != StepOTP || i < 0 || i >= otpLength {
		return
	}
	if c.digits[i] == "" {
		if i > 0 {
			c.focus = i - 1
		}
		return
	}
	c.digits[i] = ""
}

// Resend requests a fresh OTP. It is only invokable once the cooldown has
// reached zero, and a successful resend restarts it.
func (c *Controller) Resend(ctx context.Context) {
	if c.step != StepOTP || !c.cooldown.Ready() {
		return
	}

	c.loading = true
	err := c.auth.SendOTP(ctx, c.phone)
	c.loading = false

	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return
	}

	c.resetOTP()
	c.errMsg = ""
	c.cooldown.Reset()
}

func (c *Controller) verify(ctx context.Context) {
	c.loading = true
	c.errMsg = ""
	result, err := c.auth.VerifyOTP(ctx, c.phone, c.otp())
	c.loading = false

	if err != nil {
		c.errMsg = errors.UserMessage(err)
		c.resetOTP()
		return
	}

	if result.IsNewUser {
		c.step = StepRole
		return
	}

	c.finalize(result)
}

// ChooseRole registers a new user with the picked role and finalizes the
// login. Only CUSTOMER and PROVIDER are offered.
func (c *Controller) ChooseRole(ctx context.Context, role session.Role) {
	if c.step != StepRole {
		return
	}
	if role != session.RoleCustomer && role != session.RoleProvider {
		c.errMsg = "Please choose Customer or Provider"
		return
	}

	c.loading = true
	c.errMsg = ""
	result, err := c.auth.RegisterWithRole(ctx, c.phone, c.otp(), string(role))
	c.loading = false

	if err != nil {
		c.errMsg = errors.UserMessage(err)
		return
	}

	c.finalize(result)
}

func (c *Controller) finalize(result *api.AuthResult) {
	phone := result.Phone
	if phone == "" {
		phone = c.phone
	}
	if err := c.session.Login(result.Token, phone, session.Role(result.Role)); err != nil {
		c.errMsg = errors.GenericFailureMessage
		c.logger.Error("failed to persist session", map[string]interface{}{"error": err.Error()})
		return
	}
	c.cooldown.Stop()
	c.step = StepDone
}

func (c *Controller) otp() string {
	return strings.Join(c.digits[:], "")
}

func (c *Controller) filled() bool {
	for _, d := range c.digits {
		if d == "" {
			return false
		}
	}
	return true
}

func (c *Controller) resetOTP() {
	c.digits = [otpLength]string{}
	c.focus = 0
	c.submitted = false
}
