// Package engine runs parsed command trees.
//
// Each node runs against an IO triple of open files. Redirections and pipes
// rebind entries of the triple for the duration of a subtree, so the shell's
// own descriptors are never modified. Programs are started with os/exec and
// inherit the triple as their descriptors 0, 1 and 2.
package engine
