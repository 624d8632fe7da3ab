package constants

const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_MANAGER = "MANAGER"
	ROLE_STAFF   = "STAFF"
)

const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_PARSE_DATA_TO_LOCALS = "Cannot read validated input"
	ERROR_INPUT                = "Invalid input"
	ERROR_CREATE               = "Create failed"
	ERROR_EDIT                 = "Update failed"
	NOT_FOUND_RECORDS          = "Records not found"

	MISSING_LOGIN_INPUT   = "Missing username or password"
	INVALID_USERNAME      = "Username does not exist"
	INVALID_PASSWORD      = "Wrong password"
	INVALID_EMAIL         = "Invalid email"
	ACCOUNT_NOT_ACTIVE    = "Account is disabled"
	NOT_ADMIN             = "Admin permission required"
	CAN_NOT_HASH_PASSWORD = "Cannot hash password"
	EMAIL_CUSTOMER_EXISTS = "Email already registered"

	CAN_NOT_GET_RESTAURANT  = "Cannot load restaurant"
	CAN_NOT_EDIT_RESTAURANT = "Cannot update restaurant"
	CAN_NOT_GET_MENU        = "Cannot load menu"

	INVALID_CHECKOUT       = "Invalid checkout session"
	INVALID_PAYMENT_HASH   = "Invalid payment signature"
	CAN_NOT_APPEND_ORDER   = "Cannot record paid order"
	CAN_NOT_LOAD_ORDERS    = "Cannot load order list"
)
