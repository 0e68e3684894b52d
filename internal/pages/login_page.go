package pages

import (
	"github.com/almoelda/restful-booker-automation/internal/browser"
	"github.com/almoelda/restful-booker-automation/internal/logging"
	"github.com/rs/zerolog"
)

type loginSelectors struct {
	usernameInput string
	passwordInput string
	submitButton  string
	errorAlert    string
}

// LoginPage covers just the credential form itself. Flows that need the
// post-login dashboard should use AdminPage instead.
type LoginPage struct {
	driver    *browser.Driver
	logger    *zerolog.Logger
	selectors loginSelectors
}

func NewLoginPage(driver *browser.Driver, logger *zerolog.Logger) *LoginPage {
	return &LoginPage{
		driver: driver,
		logger: logging.ForComponent(logger, "LoginPage"),
		selectors: loginSelectors{
			usernameInput: `#username`,
			passwordInput: `#password`,
			submitButton:  `button[type="submit"]`,
			errorAlert:    `.alert-danger`,
		},
	}
}

func (p *LoginPage) Navigate() error {
	if err := p.driver.Navigate("/admin"); err != nil {
		return err
	}

	return p.driver.WaitForElement(p.selectors.usernameInput)
}

func (p *LoginPage) FillCredentials(username, password string) error {
	if err := p.driver.Fill(p.selectors.usernameInput, username); err != nil {
		return err
	}

	return p.driver.Fill(p.selectors.passwordInput, password)
}

func (p *LoginPage) Submit() error {
	return p.driver.Click(p.selectors.submitButton)
}

func (p *LoginPage) IsErrorShown() bool {
	return p.driver.IsVisible(p.selectors.errorAlert)
}

// FieldValues reads back what the form currently holds.
func (p *LoginPage) FieldValues() (username, password string, err error) {
	username, err = p.driver.Value(p.selectors.usernameInput)
	if err != nil {
		return "", "", err
	}

	password, err = p.driver.Value(p.selectors.passwordInput)
	if err != nil {
		return "", "", err
	}

	return username, password, nil
}
