package clean

// Units returns one unit per catalog category, in catalog order.
func Units(d Deps) []Unit {
	return []Unit{
		NewBrowser(d),
		NewActivity(d),
		NewSystem(d),
		NewDesktop(d),
		NewAppTraces(d),
	}
}
