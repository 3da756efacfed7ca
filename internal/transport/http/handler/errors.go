package handler

const (
	errInternalServer     = "Server error"
	errEmailTaken         = "Email already in use"
	errInvalidCredentials = "Invalid credentials"
	errDuplicateItem      = "Product already in wishlist"

	msgWishlistAdded   = "Product added to wishlist"
	msgWishlistRemoved = "Product removed from wishlist"
	msgLoggedOut       = "Logged out successfully"
)
