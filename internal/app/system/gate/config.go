// internal/app/system/gate/config.go
package gate

import (
	"fmt"
	"strings"
)

// Targets holds the fixed redirect destinations the engine may emit, plus
// the default logged-in landing route. The host application supplies them;
// the gate defines no defaults of its own.
type Targets struct {
	Login            string
	VerifyEmail      string
	RegisterBusiness string
	SelectBusiness   string
	SelectLocation   string
	Home             string
}

// Validate rejects misconfigured targets. An empty or non-absolute target
// is a deployment defect; it must abort startup rather than surface as a
// broken redirect on live traffic.
func (t Targets) Validate() error {
	fields := map[string]string{
		"login":             t.Login,
		"verify_email":      t.VerifyEmail,
		"register_business": t.RegisterBusiness,
		"select_business":   t.SelectBusiness,
		"select_location":   t.SelectLocation,
		"home":              t.Home,
	}
	for name, path := range fields {
		if path == "" {
			return fmt.Errorf("gate: redirect target %s is empty", name)
		}
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("gate: redirect target %s (%q) must be an absolute path", name, path)
		}
	}
	return nil
}

// Config is the full static configuration for the gatekeeper.
type Config struct {
	Routes  RouteTable
	Targets Targets
}
