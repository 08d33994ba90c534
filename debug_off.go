//go:build !bridgedebug

package wirebridge

const debugAsserts = false
