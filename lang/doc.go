// Package lang implements hyprtxt, a compact markup template language that
// expands into HTML.
//
// # Philosophy
//
// A template is a tree of tagged blocks. Elements, attributes and text slots
// are written in a brace-delimited syntax that is shorter than the HTML it
// produces. Dynamic values are named bindings resolved against a [Context]
// supplied when rendering; there are no loops, conditionals or expressions.
// Callers compute values before rendering and bind them by name.
//
// # Grammar
//
// Informal EBNF:
//
//	Element      → Ident ElementTail
//	ElementTail  → '*' Block      // void element
//	             | ':' Value      // single content shorthand
//	             | Block
//	Block        → '{' Item* '}'  // commas between items are ignored
//	Item         → Attribute | ContentItem | Element
//	Attribute    → Ident '=' Value | '.' '=' Value | '#' '=' Value
//	ContentItem  → '$' ':' Value
//	Value        → String | Ident // literal | binding
//
// Inside a block the next item is chosen by looking at most three tokens
// ahead, in this order: Ident '{', Ident ':', Ident '*' '{' (elements),
// '$' ':' (content), Ident '=', '.' '=', '#' '=' (attributes).
//
// # Example
//
//	html {
//	  lang="en"
//	  head {
//	    meta* { charset="UTF-8" }
//	    title: "Home"
//	  }
//	  body {
//	    div { .="card" #="main" p: greeting }
//	  }
//	}
//
// renders, with greeting bound to "hi", as
//
//	<html lang="en"><head><meta charset="UTF-8"><title>Home</title></head><body><div class="card" id="main"><p>hi</p></div></body></html>
//
// # Rendering
//
// Void elements render as <tag attrs>, childless elements as <tag attrs/>,
// and all others as <tag attrs>children</tag>. Attributes render in source
// order, repeated names included. Nothing is escaped.
//
// # Composition
//
// A page shell embeds a page body through an ordinary binding, by
// convention named slot:
//
//	shell, _ := lang.ParseString(ctx, `html { body { $: slot } }`)
//	page, _ := shell.Render(ctx, lang.Bindings{"slot": body})
package lang
