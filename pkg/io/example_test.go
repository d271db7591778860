package io_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/vamsha/pkg/family"
	vio "github.com/matzehuels/vamsha/pkg/io"
)

func ExampleWriteMembers() {
	ms := family.Members{
		{ID: "root-1", Name: "Grandfather", Relation: "Root", Gender: family.GenderMale},
		{ID: "m-1", ParentID: "root-1", Name: "Son", Relation: "Son", Gender: family.GenderMale},
	}
	if err := vio.WriteMembers(os.Stdout, ms, vio.FormatJSON); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// [
	//   {
	//     "id": "root-1",
	//     "parentId": null,
	//     "name": "Grandfather",
	//     "relationType": "Root",
	//     "gender": "male"
	//   },
	//   {
	//     "id": "m-1",
	//     "parentId": "root-1",
	//     "name": "Son",
	//     "relationType": "Son",
	//     "gender": "male"
	//   }
	// ]
}

func ExampleReadMembers() {
	doc := `[{"id": "A", "parentId": null, "name": "Root"}, {"id": "B", "parentId": "A", "name": "Child"}]`
	ms, err := vio.ReadMembers(strings.NewReader(doc), vio.FormatJSON)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, m := range ms {
		fmt.Printf("%s root=%v gender=%s\n", m.ID, m.IsRoot(), m.Gender)
	}
	// Output:
	// A root=true gender=male
	// B root=false gender=male
}
