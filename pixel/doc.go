// Package pixel implements image buffers in the wire formats a display
// controller scans out directly, so drawing code can work on a mapped
// scan-out buffer with the standard image interfaces.
package pixel
