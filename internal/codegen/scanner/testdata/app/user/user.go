package user

import (
	"example.com/app/base"
	greet "example.com/app/svc"
)

// Profile shows a user.
//
//router:route path:"/user/profile" name:"Profile"
type Profile struct {
	base.Activity

	//router:autowired name:"id" required:"true"
	ID int
	//router:autowired
	Nick Nickname
	//router:autowired
	Greeter greet.Greeter
	//router:autowired
	Tags []string
	//router:autowired desc:"last visit"
	Stamp *Stamp
	plain string
}

type Nickname string

type Stamp struct{}

func (*Stamp) MarshalBinary() ([]byte, error) { return nil, nil }

//router:page path:"/home" interceptors:"Auth,greet.Hello"
type Home struct {
	base.Activity
}

type Auth struct{}

func (Auth) Intercept(uri string, next func() error) error { return next() }

//router:route path:"/user/hidden"
type hidden struct {
	base.Activity
}
