package services

// UOMOptions returns the list of Unit of Measurement options.
var UOMOptions = []string{
	"Nos",
	"Sqm",
	"Sqft",
	"Rmt",
	"Cum",
	"Kg",
	"MT",
	"Lot",
	"Set",
	"Lumpsum",
	"Ltr",
	"Pair",
	"Bag",
	"Box",
	"Roll",
	"Bundle",
	"Trip",
	"Day",
	"Month",
	"Hour",
}

// VATOptions returns the list of VAT percentage options.
var VATOptions = []float64{0, 5, 12.5, 15, 20}
