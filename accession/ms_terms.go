package accession

// Scalar controlled-vocabulary accessions consulted one at a time by the
// Spectrum/Chromatogram projections in package mzml. Unlike NumericType,
// Compression, and the other enumerations above, these are not members of
// a closed set the decoder dispatches on. Each is just a single named
// term, looked up directly via ParamGroup.CvParam.
const (
	AccMSLevel          = "MS:1000511"
	AccCentroidSpectrum = "MS:1000127"
	AccProfileSpectrum  = "MS:1000128"
	AccTotalIonCurrent  = "MS:1000285"

	AccScanStartTime        = "MS:1000016"
	AccScanWindowLowerLimit = "MS:1000501"
	AccScanWindowUpperLimit = "MS:1000500"

	AccIsolationWindowTarget      = "MS:1000827"
	AccIsolationWindowLowerOffset = "MS:1000828"
	AccIsolationWindowUpperOffset = "MS:1000829"

	AccSelectedIonMZ   = "MS:1000744"
	AccPeakIntensity   = "MS:1000042"
	AccChargeState     = "MS:1000041"
	AccCollisionEnergy = "MS:1000045"

	// AccUnitMinute is the unit accession scan-start-time carries when the
	// document reports it in minutes rather than seconds.
	AccUnitMinute = "UO:0000031"
)
