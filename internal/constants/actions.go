package constants

const (
	Create = "CREATE"
	Update = "UPDATE"
	Delete = "DELETE"
	Borrow = "BORROW"
)
