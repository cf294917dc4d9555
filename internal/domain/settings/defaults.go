package settings

import "encoding/json"

// KeyEventDefinitions es la clave de configuración que guarda las
// reglas de derivación serializadas como JSON.
const KeyEventDefinitions = "event_definitions"

// defaultDefinitions son las seis reglas de fábrica. El orden se
// conserva tal cual por determinismo; los offsets y nombres deben
// mantenerse compatibles con instalaciones existentes.
var defaultDefinitions = []EventDefinition{
	{Type: "pregnancy_check", Names: map[string]string{"zh": "驗孕", "en": "Pregnancy Check", "ja": "妊娠鑑定"}, Days: 35},
	{Type: "dry_off", Names: map[string]string{"zh": "乾乳", "en": "Dry Off", "ja": "乾乳"}, Days: 220},
	{Type: "expected_calving", Names: map[string]string{"zh": "預產期", "en": "Expected Calving", "ja": "分娩予定"}, Days: 280},
	{Type: "calving", Names: map[string]string{"zh": "分娩", "en": "Calving", "ja": "分娩"}, Days: 280},
	{Type: "weaning", Names: map[string]string{"zh": "斷奶", "en": "Weaning", "ja": "離乳"}, Days: 360},
	{Type: "culling", Names: map[string]string{"zh": "汰除", "en": "Culling", "ja": "淘汰"}, Days: 730},
}

// DefaultSettings devuelve los defaults de fábrica como mapa
// clave -> valor serializado. Se inyecta al Service en la
// construcción; no hay estado global.
func DefaultSettings() map[string]string {
	b, err := json.Marshal(defaultDefinitions)
	if err != nil {
		// Las reglas de fábrica son constantes; si no serializan es
		// un bug de compilación, no un error de runtime.
		panic("settings: marshal default definitions: " + err.Error())
	}
	return map[string]string{
		KeyEventDefinitions: string(b),
	}
}
