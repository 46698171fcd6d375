package models

// Quality classifies the authenticity/origin grade of a screen batch.
type Quality string

const (
	QualityOriginal    Quality = "Original"
	QualityOEM         Quality = "OEM"
	QualityAAAPlus     Quality = "AAA+"
	QualityIncell      Quality = "Incell"
	QualityOLEDGeneric Quality = "OLED Genérico"
	QualityOther       Quality = "Otro"
)

// AllQualities returns the enumeration values in declaration order.
func AllQualities() []Quality {
	return []Quality{
		QualityOriginal,
		QualityOEM,
		QualityAAAPlus,
		QualityIncell,
		QualityOLEDGeneric,
		QualityOther,
	}
}

// IsValid reports whether q is one of the enumerated grades.
func (q Quality) IsValid() bool {
	for _, known := range AllQualities() {
		if q == known {
			return true
		}
	}
	return false
}
