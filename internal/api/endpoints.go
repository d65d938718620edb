package api

import "context"

// User is the profile record returned by the authentication endpoints.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	County string `json:"county"`
	Status string `json:"status"`
}

// LoginData is the payload of a successful login, either variant.
type LoginData struct {
	User            User   `json:"user"`
	Token           string `json:"token"`
	RequiresPayment bool   `json:"requiresPayment"`
}

// LoginResult pairs the login payload with the server's message, which the
// pending-payment flow surfaces to the user.
type LoginResult struct {
	LoginData
	Message string
}

// Login authenticates by email.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var data LoginData
	msg, err := c.post(ctx, "/auth/login", body, &data)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{LoginData: data, Message: msg}, nil
}

// LoginPhone authenticates by phone number.
func (c *Client) LoginPhone(ctx context.Context, phone, password string) (LoginResult, error) {
	body := map[string]string{"phone": phone, "password": password}
	var data LoginData
	msg, err := c.post(ctx, "/auth/login-phone", body, &data)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{LoginData: data, Message: msg}, nil
}

// VerifyPin submits the re-entry PIN. A nil error means the server accepted
// the code; verification is never decided locally.
func (c *Client) VerifyPin(ctx context.Context, pin string) error {
	_, err := c.post(ctx, "/auth/verify-pin", map[string]string{"pin": pin}, nil)
	return err
}

// RegisterInput is the onboarding request body.
type RegisterInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PIN      string `json:"pin"`
	Role     string `json:"role"`
	County   string `json:"county"`
}

// RegisterData is the payload of a successful registration.
type RegisterData struct {
	User            User `json:"user"`
	PaymentRequired bool `json:"paymentRequired"`
	OnboardingFee   int  `json:"onboardingFee"`
}

// RegisterResult pairs the registration payload with the server's message.
type RegisterResult struct {
	RegisterData
	Message string
}

// Register creates a provisional account.
func (c *Client) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	var data RegisterData
	msg, err := c.post(ctx, "/auth/register", input, &data)
	if err != nil {
		return RegisterResult{}, err
	}
	return RegisterResult{RegisterData: data, Message: msg}, nil
}
