/*
Package registry holds the kind-keyed stores behind the mediator: a single-value
registry for request handlers, a set registry for notification handlers and
behaviors, and the two-axis registry for error handlers.
*/
package registry
