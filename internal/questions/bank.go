// Package questions holds the static coding question bank used by interview
// rooms. Entries are read-only.
package questions

import (
	"github.com/Priyan1011/remote-interview-platform/internal/models"
)

type Bank struct {
	questions []models.Question
	byID      map[string]*models.Question
}

func NewBank() *Bank {
	b := &Bank{questions: defaultQuestions}
	b.byID = make(map[string]*models.Question, len(b.questions))
	for i := range b.questions {
		b.byID[b.questions[i].ID] = &b.questions[i]
	}
	return b
}

func (b *Bank) List() []models.Question { return b.questions }

func (b *Bank) Get(id string) (*models.Question, bool) {
	q, ok := b.byID[id]
	return q, ok
}

// Default returns the entry new rooms start on.
func (b *Bank) Default() *models.Question { return &b.questions[0] }

// StarterCode resolves a question's starter buffer for a language, falling
// back to the default question when the id is unknown.
func (b *Bank) StarterCode(id string, language models.Language) string {
	q, ok := b.byID[id]
	if !ok {
		q = b.Default()
	}
	return q.StarterCode[language]
}

var defaultQuestions = []models.Question{
	{
		ID:    "two-sum",
		Title: "Two Sum",
		Description: "Given an array of integers nums and an integer target, return indices of the two numbers " +
			"such that they add up to target. You may assume that each input has exactly one solution, and you " +
			"may not use the same element twice.",
		Examples: []models.QuestionExample{
			{Input: "nums = [2,7,11,15], target = 9", Output: "[0,1]", Explanation: "Because nums[0] + nums[1] == 9, we return [0, 1]."},
			{Input: "nums = [3,2,4], target = 6", Output: "[1,2]"},
		},
		Constraints: []string{
			"2 <= nums.length <= 10^4",
			"-10^9 <= nums[i] <= 10^9",
			"-10^9 <= target <= 10^9",
		},
		StarterCode: map[models.Language]string{
			models.LangJavaScript: "function twoSum(nums, target) {\n  // Write your solution here\n}\n",
			models.LangPython:     "def two_sum(nums, target):\n    # Write your solution here\n    pass\n",
			models.LangJava: "class Main {\n    public int[] twoSum(int[] nums, int target) {\n        // Write your solution here\n        return new int[]{};\n    }\n}\n",
		},
	},
	{
		ID:    "reverse-string",
		Title: "Reverse String",
		Description: "Write a function that reverses a string. The input string is given as an array of " +
			"characters. You must do this by modifying the input array in-place with O(1) extra memory.",
		Examples: []models.QuestionExample{
			{Input: `s = ["h","e","l","l","o"]`, Output: `["o","l","l","e","h"]`},
			{Input: `s = ["H","a","n","n","a","h"]`, Output: `["h","a","n","n","a","H"]`},
		},
		Constraints: []string{
			"1 <= s.length <= 10^5",
			"s[i] is a printable ascii character",
		},
		StarterCode: map[models.Language]string{
			models.LangJavaScript: "function reverseString(s) {\n  // Write your solution here\n}\n",
			models.LangPython:     "def reverse_string(s):\n    # Write your solution here\n    pass\n",
			models.LangJava: "class Main {\n    public void reverseString(char[] s) {\n        // Write your solution here\n    }\n}\n",
		},
	},
	{
		ID:    "valid-palindrome",
		Title: "Valid Palindrome",
		Description: "A phrase is a palindrome if, after converting all uppercase letters into lowercase letters " +
			"and removing all non-alphanumeric characters, it reads the same forward and backward. Given a string " +
			"s, return true if it is a palindrome, or false otherwise.",
		Examples: []models.QuestionExample{
			{Input: `s = "A man, a plan, a canal: Panama"`, Output: "true", Explanation: `"amanaplanacanalpanama" is a palindrome.`},
			{Input: `s = "race a car"`, Output: "false"},
		},
		Constraints: []string{
			"1 <= s.length <= 2 * 10^5",
			"s consists only of printable ascii characters",
		},
		StarterCode: map[models.Language]string{
			models.LangJavaScript: "function isPalindrome(s) {\n  // Write your solution here\n}\n",
			models.LangPython:     "def is_palindrome(s):\n    # Write your solution here\n    pass\n",
			models.LangJava: "class Main {\n    public boolean isPalindrome(String s) {\n        // Write your solution here\n        return false;\n    }\n}\n",
		},
	},
}
