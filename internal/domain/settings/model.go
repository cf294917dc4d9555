package settings

// Setting es un par clave/valor persistido. Las claves ausentes en el
// store caen al default inyectado en el Service.
type Setting struct {
	Key   string
	Value string
}

// EventDefinition describe cómo derivar un evento futuro a partir de
// una fecha de inseminación: tipo, nombres visibles por idioma y
// offset en días.
type EventDefinition struct {
	Type  string            `json:"type"`
	Names map[string]string `json:"names"` // locale -> nombre visible
	Days  int               `json:"days"`
}
