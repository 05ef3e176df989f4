package grid

// dayNames are the Hebrew day names, indexed like DayKeys.
var dayNames = [7]string{"ראשון", "שני", "שלישי", "רביעי", "חמישי", "שישי", "שבת"}

// Name returns the Hebrew display name of the day.
func (k DayKey) Name() string {
	if i := k.Offset(); i >= 0 {
		return dayNames[i]
	}
	return string(k)
}

var typeLabels = map[EventType]string{
	TypeOfficialExam: "בגרות",
	TypeMockExam:     "מגן / מתכונת",
	TypeTrip:         "טיול / מסע",
	TypeVacation:     "חופשה",
	TypeHoliday:      "חג / מועד",
	TypeGeneral:      "כללי",
}

// Label returns the Hebrew display label of the type.
func (t EventType) Label() string {
	if l, ok := typeLabels[t]; ok {
		return l
	}
	return string(t)
}

// ParashaLabel renders a weekly reading as shown on the shabbat slot.
func ParashaLabel(name string) string {
	return "פרשת " + name
}
