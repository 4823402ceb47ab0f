package interfaces

//go:generate mockgen -package=mock -source=keybuilder.go -destination=mock/keybuilder.go

// KeyBuilder canonizes procedure calls into deterministic cache keys
type KeyBuilder interface {
	Build(operation string, params interface{}) (string, error)
}
