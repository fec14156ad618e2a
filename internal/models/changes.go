package models

func setString(changes map[string]interface{}, column string, v *string) {
	if v != nil {
		changes[column] = *v
	}
}

func setBool(changes map[string]interface{}, column string, v *bool) {
	if v != nil {
		changes[column] = *v
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
