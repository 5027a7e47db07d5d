// Package rules contains shipped rules.
package rules
