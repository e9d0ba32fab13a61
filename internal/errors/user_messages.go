package errors

// User-friendly error messages
const (
	MsgPropertyNotFound   = "Property not found"
	MsgContactNotFound    = "Contact not found"
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgInvalidUpload      = "Images must be JPEG, PNG or WebP files of at most 5MB each."
	MsgTooManyImages      = "A property can have at most 5 images."
	MsgUnauthorized       = "Please log in to continue."
	MsgInvalidCredentials = "Invalid email or password."
	MsgEmailTaken         = "An account with this email already exists."
	MsgServiceUnavailable = "We're unable to retrieve property information right now. Please try again in a few minutes."
	MsgRateLimited        = "You're searching too quickly! Please wait a moment and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
