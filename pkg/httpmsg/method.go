package httpmsg

import "fmt"

// Method is one of the nine HTTP/1.1 request methods this system
// understands. It is parsed from (and printed as) the exact uppercase
// wire token.
type Method uint8

const (
	MethodUnknown Method = iota
	MethodGET
	MethodPOST
	MethodPUT
	MethodDELETE
	MethodHEAD
	MethodPATCH
	MethodCONNECT
	MethodOPTIONS
	MethodTRACE
)

var methodNames = map[Method]string{
	MethodGET:     "GET",
	MethodPOST:    "POST",
	MethodPUT:     "PUT",
	MethodDELETE:  "DELETE",
	MethodHEAD:    "HEAD",
	MethodPATCH:   "PATCH",
	MethodCONNECT: "CONNECT",
	MethodOPTIONS: "OPTIONS",
	MethodTRACE:   "TRACE",
}

var methodsByName = func() map[string]Method {
	m := make(map[string]Method, len(methodNames))
	for id, name := range methodNames {
		m[name] = id
	}
	return m
}()

// String returns the method's wire token, or "" for MethodUnknown.
func (m Method) String() string {
	return methodNames[m]
}

// InvalidMethodError is returned by ParseMethod for a token that does
// not match any known method exactly.
type InvalidMethodError struct{ Token string }

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("httpmsg: invalid HTTP method %q", e.Token)
}

// ParseMethod parses an exact uppercase method token.
func ParseMethod(token string) (Method, error) {
	m, ok := methodsByName[token]
	if !ok {
		return MethodUnknown, &InvalidMethodError{Token: token}
	}
	return m, nil
}
