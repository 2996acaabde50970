package types

// The stored configuration lives under the same coordinates the admin app
// writes on the platform, so a blob copied from either side reads the same.
const (
	FunctionConfigurationNamespace = "$app:smart-variant-discounts"
	FunctionConfigurationKey       = "function-configuration"
	FunctionConfigurationValueType = "json"

	// FunctionConfigurationDiscountTitle is the title of the automatic
	// discount created the first time a shop saves a configuration.
	FunctionConfigurationDiscountTitle = "[Smart Discount] Automatic Subscription Discounts"
)
