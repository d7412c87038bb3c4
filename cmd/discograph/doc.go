// Command discograph manages a version-controlled music release metadata
// repository: importing, validating, migrating, and compiling album
// documents, and projecting them into other formats.
package main
