// Package nlu defines the interpreter contract used to resolve free-text user
// turns in stories into intent labels, plus the default regex implementation.
package nlu
