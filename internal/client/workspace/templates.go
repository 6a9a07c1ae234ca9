package workspace

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
)

// LanguageInfo describes a supported language.
type LanguageInfo struct {
	Name      string
	Extension string
	Template  string
}

var languages = map[models.Language]LanguageInfo{
	models.LangPython: {"Python", ".py", `# Solution for the problem
def solve():
    # Read input
    n = int(input())
    # Your solution here
    pass

if __name__ == "__main__":
    solve()
`},
	models.LangJavaScript: {"JavaScript", ".js", `// Solution for the problem
const readline = require('readline');
const rl = readline.createInterface({
  input: process.stdin,
  output: process.stdout
});

rl.on('line', (line) => {
  // Your solution here
});
`},
	models.LangCPP: {"C++", ".cpp", `#include <bits/stdc++.h>
using namespace std;

int main() {
    ios_base::sync_with_stdio(false);
    cin.tie(NULL);

    // Your solution here

    return 0;
}
`},
	models.LangJava: {"Java", ".java", `import java.util.*;

public class Main {
    public static void main(String[] args) {
        Scanner sc = new Scanner(System.in);
        // Your solution here
        sc.close();
    }
}
`},
}

// Languages lists the supported languages in display order.
func Languages() []models.Language {
	return []models.Language{models.LangPython, models.LangJavaScript, models.LangCPP, models.LangJava}
}

// Info returns the description of lang. Unknown languages fall back to
// Python.
func Info(lang models.Language) LanguageInfo {
	if info, ok := languages[lang]; ok {
		return info
	}
	return languages[models.LangPython]
}

// ParseLanguage accepts a language id, display name or extension, e.g.
// "cpp", "C++" or ".cpp".
func ParseLanguage(s string) (models.Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, lang := range Languages() {
		info := languages[lang]
		if s == string(lang) || s == strings.ToLower(info.Name) || s == info.Extension || "."+s == info.Extension {
			return lang, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", s)
}
