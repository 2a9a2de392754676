package domain

// AccessController はアクセス制御のインターフェース.
type AccessController interface {
	IsAllowed(host string) (bool, error)
	Reload() error
}
