// Package schema declares the destination columns of the products seed and
// the source labels they are read from.
package schema

// Kind selects how a column's literal is produced.
type Kind string

const (
	// KindSKU synthesizes the SKU from the identity label.
	KindSKU Kind = "sku"
	// KindEAN renders the barcode, falling back to a placeholder.
	KindEAN Kind = "ean"
	// KindString is trimmed, escaped text or NULL.
	KindString Kind = "string"
	// KindDate is quoted verbatim text or NULL.
	KindDate Kind = "date"
	// KindUnits is an integer that defaults to 1.
	KindUnits Kind = "units"
	// KindFlag is true only for "TRUE".
	KindFlag Kind = "flag"
	// KindTemperature maps the refrigeration flag to 'refrigerated' or 'ambient'.
	KindTemperature Kind = "temperature"
	// KindActive is pinned to true unless the mapping lets the source decide.
	KindActive Kind = "active"
)

// Source labels with special meaning.
const (
	LabelID      = "ID"
	LabelName    = "Nombre"
	LabelBarcode = "Código de Barras"
	LabelActive  = "Activo"
)

// Column maps one destination column to its source label.
type Column struct {
	Name   string
	Source string
	Kind   Kind
	// Strict columns must be present in the header; lenient ones default
	// when absent.
	Strict bool
	// Break ends a line of the column list in the rendered preamble.
	Break bool
}

// Products is the fixed column order of public.products seeds.
var Products = []Column{
	{Name: "sku", Source: LabelID, Kind: KindSKU, Strict: true},
	{Name: "ean", Source: LabelBarcode, Kind: KindEAN},
	{Name: "name", Source: LabelName, Kind: KindString, Strict: true},
	{Name: "short_name", Source: LabelName, Kind: KindString, Strict: true},
	{Name: "description", Source: "Características", Kind: KindString, Strict: true},
	{Name: "units_per_package", Source: "Cantidad", Kind: KindUnits, Strict: true, Break: true},

	{Name: "temperature_requirement", Source: "Es Refrigerado", Kind: KindTemperature},
	{Name: "requires_cold_chain", Source: "Es Refrigerado", Kind: KindFlag},
	{Name: "is_controlled", Source: "Es Controlado", Kind: KindFlag},
	{Name: "is_active", Source: LabelActive, Kind: KindActive, Break: true},

	{Name: "pharmaceutical_form_id", Source: "ID Forma Farmacéutica", Kind: KindString, Strict: true},
	{Name: "unit_of_measure_id", Source: "ID Medida Peso/Tamaño", Kind: KindString, Strict: true},
	{Name: "package_type_id", Source: "ID Tipo Empaque", Kind: KindString, Strict: true, Break: true},

	{Name: "registration_number", Source: "Número Registro Sanitario", Kind: KindString, Strict: true},
	{Name: "registration_expiry", Source: "Vencimiento Registro Sanitario", Kind: KindDate, Strict: true, Break: true},

	{Name: "generated_name", Source: "Nombre Generado", Kind: KindString, Strict: true},
	{Name: "characteristics", Source: "Características", Kind: KindString, Strict: true},
	{Name: "size_capacity", Source: "Talla/Capacidad", Kind: KindString, Strict: true},
	{Name: "caliber_thickness", Source: "Calibre/Grosor/Diámetro", Kind: KindString, Strict: true},
	{Name: "special_offer_description", Source: "Descripción Oferta Especial", Kind: KindString, Strict: true, Break: true},

	{Name: "is_hospital_use", Source: "Uso Hospitalario", Kind: KindFlag},
	{Name: "requires_retained_prescription", Source: "Requiere Receta Retenida", Kind: KindFlag},
	{Name: "is_chronic_use", Source: "Uso Crónico", Kind: KindFlag, Break: true},

	{Name: "for_own_pharmacies", Source: "Para Farmacias Propias", Kind: KindFlag},
	{Name: "for_independent_pharmacies", Source: "Para Farmacias Independientes", Kind: KindFlag},
	{Name: "for_institutional_use", Source: "Para Uso Institucional/Hospitalario", Kind: KindFlag, Break: true},

	{Name: "is_routed", Source: "Es Ruteado", Kind: KindFlag},
	{Name: "for_wholesale", Source: "Para Venta al por Mayor", Kind: KindFlag},
	{Name: "for_self_service", Source: "Para Autoservicio", Kind: KindFlag},
	{Name: "is_draft", Source: "Es Borrador", Kind: KindFlag},
}

// Names returns the destination column names in order.
func Names(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}

// Lines groups the column names into the preamble's lines.
func Lines(cols []Column) [][]string {
	var (
		out [][]string
		cur []string
	)
	for _, c := range cols {
		cur = append(cur, c.Name)
		if c.Break {
			out = append(out, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// StrictLabels returns the distinct source labels of the strict columns, in
// column order.
func StrictLabels(cols []Column) []string {
	seen := make(map[string]struct{}, len(cols))
	var out []string
	for _, c := range cols {
		if !c.Strict {
			continue
		}
		if _, ok := seen[c.Source]; ok {
			continue
		}
		seen[c.Source] = struct{}{}
		out = append(out, c.Source)
	}
	return out
}
