// Package memory provides an in-process implementation of the store
// interfaces. Data lives only as long as the process does.
package memory
