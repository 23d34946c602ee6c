// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"

	"github.com/opsdeck/opsdeck/internal/app/system/auth"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn bool
	UserName   string

	// Page context
	Title       string
	CurrentPath string
}

// SiteName is the display name used across templates.
const SiteName = "OpsDeck"

// NewBaseVM creates a populated BaseVM for a page.
func NewBaseVM(r *http.Request, title string) BaseVM {
	name := ""
	u, signedIn := auth.CurrentUser(r)
	if signedIn {
		name = u.Name
	}
	return BaseVM{
		SiteName:    SiteName,
		IsLoggedIn:  signedIn,
		UserName:    name,
		Title:       title,
		CurrentPath: r.URL.Path,
	}
}
