package core

import "fmt"

func rec(id, name string, age int, gender, city, state string) Record {
	return Record{
		ID:      id,
		Name:    name,
		Age:     age,
		Gender:  gender,
		Address: Address{City: city, State: state},
	}
}

// exampleRecords is the two-record store used throughout the package tests.
func exampleRecords() []Record {
	return []Record{
		rec("111111111111", "Asha", 30, GenderFemale, "Pune", "Maharashtra"),
		rec("222222222222", "Ravi", 45, GenderMale, "Delhi", "Delhi"),
	}
}

// mixedRecords has repeated states and cities, an unknown gender and
// name collisions for search tests.
func mixedRecords() []Record {
	return []Record{
		rec("100000000001", "Asha Patel", 30, GenderFemale, "Pune", "Maharashtra"),
		rec("100000000002", "Ravi Kumar", 45, GenderMale, "Delhi", "Delhi"),
		rec("100000000003", "Kiran Rao", 22, "Other", "Mumbai", "Maharashtra"),
		rec("100000000004", "Priya Kumar", 61, GenderFemale, "Mumbai", "Maharashtra"),
		rec("100000000005", "Arjun Singh", 18, GenderMale, "Jaipur", "Rajasthan"),
		rec("100000000006", "Meena Kumari", 37, GenderFemale, "Delhi", "Delhi"),
		rec("100000000007", "Vikram Shah", 52, GenderMale, "Pune", "Maharashtra"),
		rec("100000000008", "Sunita Devi", 29, GenderFemale, "Patna", "Bihar"),
	}
}

// generatedRecords returns n valid records cycling through a few cities.
func generatedRecords(n int) []Record {
	cities := []struct{ city, state string }{
		{"Pune", "Maharashtra"},
		{"Delhi", "Delhi"},
		{"Jaipur", "Rajasthan"},
		{"Chennai", "Tamil Nadu"},
		{"Kochi", "Kerala"},
	}
	out := make([]Record, n)
	for i := range out {
		c := cities[i%len(cities)]
		gender := GenderMale
		if i%2 == 1 {
			gender = GenderFemale
		}
		out[i] = rec(fmt.Sprintf("%012d", 500000000000+i), fmt.Sprintf("Person %d", i), 18+i%60, gender, c.city, c.state)
	}
	return out
}
