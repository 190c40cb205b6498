package repository

// Factory describes access to the pharmacy-side repositories.
type Factory interface {
	Ledger() StockLedger
	Products() ProductRepository
	Orders() OrderRepository
}
