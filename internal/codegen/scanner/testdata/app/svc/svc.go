package svc

import "example.com/app/base"

type Greeter interface {
	base.Provider
	Greet() string
}

// Hello greets.
//
//router:route path:"/svc/hello"
//router:service interfaces:"Greeter" key:"hello" singleton:"true"
type Hello struct{}

func (Hello) Init() error { return nil }

func (Hello) Greet() string { return "hello" }
