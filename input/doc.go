// Package input holds the keyboard actors: the Input Monitor polling the
// console and the Key Dispatcher broadcasting what it reads.
package input
