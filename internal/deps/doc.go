// Package deps reports whether the external tools dubmux shells out to are
// installed, for the doctor command and startup warnings.
package deps
