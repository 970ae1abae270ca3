package lang_test

import (
	"context"
	"fmt"
	"os"

	"github.com/ardnew/hyprtxt/lang"
)

func Example() {
	ctx := context.Background()

	tpl, err := lang.ParseString(ctx, `
		html {
			lang="en"
			head {
				meta* { charset="UTF-8" }
				title: "Home"
			}
			body {
				div { .="card" #="main" p: greeting }
			}
		}`)
	if err != nil {
		fmt.Println(err)

		return
	}

	html, err := tpl.Render(ctx, lang.Bindings{"greeting": "hi"})
	if err != nil {
		fmt.Println(err)

		return
	}

	fmt.Println(html)
	// Output: <html lang="en"><head><meta charset="UTF-8"><title>Home</title></head><body><div class="card" id="main"><p>hi</p></div></body></html>
}

func Example_composition() {
	ctx := context.Background()

	shell, _ := lang.ParseString(ctx, `html { body { $: slot } }`)
	page, _ := lang.ParseString(ctx, `main { h1: heading }`)

	body, _ := page.Render(ctx, lang.Bindings{"heading": "About"})
	out, _ := shell.Render(ctx, lang.Bindings{"slot": body})

	fmt.Println(out)
	// Output: <html><body><main><h1>About</h1></main></body></html>
}

func Example_syntaxError() {
	_, err := lang.ParseString(context.Background(), `p { x }`)

	fmt.Print(err)
	// Output:
	// syntax error at line 1, column 7: unexpected "}", expected "*" or ":" or "=" or "{":
	//   1 | p { x }
	//             ^
}

func ExampleFormat() {
	tpl, _ := lang.ParseString(context.Background(), `div{.="a" p:"x" br*{}}`)

	_ = lang.Format(os.Stdout, tpl.Root, 2)
	// Output:
	// div {
	//   class="a"
	//   p: "x"
	//   br* {}
	// }
}

func ExampleNewElement() {
	root := lang.NewElement("ul", []lang.Attribute{lang.Class(lang.Lit("menu"))},
		lang.NewElement("li", nil, lang.Slot("first")),
		lang.NewElement("li", nil, lang.Text("second")))

	out, err := lang.Render(root, lang.Bindings{"first": "one"})
	fmt.Println(out, err)
	// Output: <ul class="menu"><li>one</li><li>second</li></ul> <nil>
}
