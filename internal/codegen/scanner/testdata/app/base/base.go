package base

type Activity struct{}

type Fragment struct{}

type Provider interface {
	Init() error
}

type UriHandler interface {
	HandleURI(uri string) error
}

type UriInterceptor interface {
	Intercept(uri string, next func() error) error
}
