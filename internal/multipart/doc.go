// Package multipart implements the range grammar shared by multipart URI
// fragments (`ref:Partitur#7-9,10-11`) and step subsets, plus the file naming
// rule for numbered parts (`Partitur.png`, `Partitur_no002.png`, ...).
package multipart
