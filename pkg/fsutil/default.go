package fsutil

import (
	"github.com/saulvaldelvira/http-server/pkg/httpmsg"
	"github.com/saulvaldelvira/http-server/pkg/router"
)

// RegisterDefaults wires the filesystem handlers into rt the same way
// the original static file server does out of the box: GET/POST/
// DELETE/HEAD default handlers, "/" rewritten to index.html, the
// suffix-rewriting and Accept-Ranges pre-interceptors, and an access
// log on stdout.
func RegisterDefaults(rt *router.Router) {
	rt.PreInterceptor(SuffixHTML)
	rt.PreInterceptor(AcceptRanges)

	rt.AddDefault(httpmsg.MethodGET, CatHandler)
	rt.AddDefault(httpmsg.MethodPOST, PostHandler)
	rt.AddDefault(httpmsg.MethodDELETE, DeleteHandler)
	rt.AddDefault(httpmsg.MethodHEAD, HeadHandler)

	rt.Get(router.Literal("/"), RootHandler)
	rt.Head(router.Literal("/"), RootHandler)

	rt.PostInterceptor(LogStdout)
}
