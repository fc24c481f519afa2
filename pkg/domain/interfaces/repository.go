package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Cell() CellRepository
	Filter() FilterRepository

	Close() error
}
