package vendorcontext

import "github.com/gofiber/fiber/v2"

// KeyVendorContext is the fiber locals key the auth middleware writes.
const KeyVendorContext = "VENDOR_CONTEXT"

// VendorContext identifies the authenticated vendor for a request.
type VendorContext struct {
	VendorID        uint   `json:"vendor_id"`
	VendorUUID      string `json:"vendor_uuid"`
	Name            string `json:"name"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

// GetVendorContext retrieves the vendor context from fiber context.
// Returns an unauthenticated context if none is set.
func GetVendorContext(c *fiber.Ctx) VendorContext {
	if ctx := c.Locals(KeyVendorContext); ctx != nil {
		return ctx.(VendorContext)
	}
	return VendorContext{IsAuthenticated: false}
}

// SetVendorContext stores the vendor context on the request.
func SetVendorContext(c *fiber.Ctx, ctx VendorContext) {
	c.Locals(KeyVendorContext, ctx)
}
