package core

// Entity is a unique identifier for a world entity
// 0 is reserved as the invalid entity
type Entity uint64

// NoEntity is the zero value marking "no entity"
const NoEntity Entity = 0
