package stomp_test

import (
	"fmt"
	"strings"

	"github.com/nofeaturesonlybugs/network-monitor"
)

func ExampleFrame() {
	headers := stomp.NewHeaders()
	headers.Set(stomp.HeaderDestination, "/passengers")
	headers.Set("foo", "bar")
	f := stomp.Frame{
		Command: stomp.CommandSend,
		Headers: headers,
		Body:    []byte("Hello, World!"),
	}
	fmt.Println(strings.TrimRight(f.String(), "\x00"))

	// Output: SEND
	// destination:/passengers
	// foo:bar
	//
	// Hello, World!
}
