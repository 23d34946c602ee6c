// internal/app/system/gate/selection.go
package gate

import "net/http"

// Selection-context cookies. Only presence matters to the gate; values are
// written (and read) by the select-business/select-location flow.
const (
	BusinessCookie  = "currentBusiness"
	WarehouseCookie = "currentWarehouse"
	LocationCookie  = "currentLocation"
)

// Selection reports which operating context the caller has picked.
type Selection struct {
	HasBusiness  bool
	HasWarehouse bool
	HasLocation  bool
}

// HasLocationContext reports whether a location-bearing context is set.
// Warehouse and location are alternative operating modes; either one
// satisfies the requirement.
func (s Selection) HasLocationContext() bool {
	return s.HasWarehouse || s.HasLocation
}

// ReadSelection derives the selection flags from cookie presence.
func ReadSelection(r *http.Request) Selection {
	return Selection{
		HasBusiness:  hasCookie(r, BusinessCookie),
		HasWarehouse: hasCookie(r, WarehouseCookie),
		HasLocation:  hasCookie(r, LocationCookie),
	}
}

func hasCookie(r *http.Request, name string) bool {
	_, err := r.Cookie(name)
	return err == nil
}
