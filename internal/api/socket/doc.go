// Package socket implements the daemon's control protocol: JSON envelope
// messages over TCP, one request and one reply per connection.
//
// The envelope carries a type tag and a typed payload. Clients use it to
// dismiss the overlay, push tunable changes and query the current policy.
package socket
